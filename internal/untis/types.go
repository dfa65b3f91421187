package untis

import (
	"encoding/json"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

type rpcRequest struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	JSONRPC string `json:"jsonrpc"`
}

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type authParams struct {
	User     string `json:"user"`
	Password string `json:"password"`
	Client   string `json:"client"`
}

type authResult struct {
	SessionID  string `json:"sessionId"`
	PersonType int    `json:"personType"`
	PersonID   int64  `json:"personId"`
	KlasseID   int64  `json:"klasseId"`
}

type element struct {
	ID   int64 `json:"id"`
	Type int   `json:"type"`
}

type timetableOptions struct {
	Element          element    `json:"element"`
	StartDate        model.Date `json:"startDate"`
	EndDate          model.Date `json:"endDate"`
	ShowInfo         bool       `json:"showInfo"`
	ShowSubstText    bool       `json:"showSubstText"`
	ShowLsText       bool       `json:"showLsText"`
	ShowLsNumber     bool       `json:"showLsNumber"`
	ShowStudentgroup bool       `json:"showStudentgroup"`
	ShowBooking      bool       `json:"showBooking"`
	TeacherFields    []string   `json:"teacherFields"`
	RoomFields       []string   `json:"roomFields"`
	SubjectFields    []string   `json:"subjectFields"`
	KlasseFields     []string   `json:"klasseFields"`
}

type timetableParams struct {
	Options timetableOptions `json:"options"`
}

var elementFields = []string{"id", "name", "longname", "externalkey"}

type wireRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LongName string `json:"longname"`
	OrgID    *int64 `json:"orgid"`
	OrgName  string `json:"orgname"`
}

type wireLesson struct {
	ID           int64       `json:"id"`
	Date         model.Date  `json:"date"`
	StartTime    model.Clock `json:"startTime"`
	EndTime      model.Clock `json:"endTime"`
	Kl           []wireRef   `json:"kl"`
	Te           []wireRef   `json:"te"`
	Su           []wireRef   `json:"su"`
	Ro           []wireRef   `json:"ro"`
	LsType       string      `json:"lstype"`
	Code         string      `json:"code"`
	Info         string      `json:"info"`
	SubstText    string      `json:"substText"`
	LsText       string      `json:"lstext"`
	LsNumber     int         `json:"lsnumber"`
	StatFlags    string      `json:"statflags"`
	ActivityType string      `json:"activityType"`
	Sg           string      `json:"sg"`
	BkRemark     string      `json:"bkRemark"`
	BkText       string      `json:"bkText"`
}

type wireTimeUnit struct {
	Name      string      `json:"name"`
	StartTime model.Clock `json:"startTime"`
	EndTime   model.Clock `json:"endTime"`
}

type wireTimegridDay struct {
	Day       int            `json:"day"`
	TimeUnits []wireTimeUnit `json:"timeUnits"`
}

type wireHoliday struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	LongName  string     `json:"longName"`
	StartDate model.Date `json:"startDate"`
	EndDate   model.Date `json:"endDate"`
}

type wireSchoolYear struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartDate model.Date `json:"startDate"`
	EndDate   model.Date `json:"endDate"`
}

type searchParams struct {
	Search string `json:"search"`
}

type searchResult struct {
	Schools []wireSchool `json:"schools"`
}

type wireSchool struct {
	Server      string `json:"server"`
	LoginName   string `json:"loginName"`
	DisplayName string `json:"displayName"`
	Address     string `json:"address"`
}

func toRefs(refs []wireRef) model.RefList {
	if len(refs) == 0 {
		return nil
	}
	out := make(model.RefList, len(refs))
	for i, r := range refs {
		out[i] = model.Ref{
			ID:         r.ID,
			Name:       r.Name,
			LongName:   r.LongName,
			OriginID:   r.OrgID,
			OriginName: r.OrgName,
		}
	}
	return out
}

func toLessonCode(code string) model.LessonCode {
	switch model.LessonCode(code) {
	case model.LessonCodeCancelled:
		return model.LessonCodeCancelled
	case model.LessonCodeIrregular:
		return model.LessonCodeIrregular
	}
	return model.LessonCodeNone
}

func (w wireLesson) toModel() model.Lesson {
	return model.Lesson{
		ID:               w.ID,
		Date:             w.Date,
		StartTime:        w.StartTime,
		EndTime:          w.EndTime,
		Subjects:         toRefs(w.Su),
		Teachers:         toRefs(w.Te),
		Rooms:            toRefs(w.Ro),
		Classes:          toRefs(w.Kl),
		Code:             toLessonCode(w.Code),
		LessonType:       w.LsType,
		SubstitutionText: w.SubstText,
		LessonText:       w.LsText,
		Info:             w.Info,
		BookingRemark:    w.BkRemark,
		BookingText:      w.BkText,
		LessonNumber:     w.LsNumber,
		StatusFlags:      w.StatFlags,
		ActivityType:     w.ActivityType,
		StudentGroup:     w.Sg,
	}
}

func (w wireTimegridDay) toModel() model.TimegridDay {
	units := make(model.TimeGrid, len(w.TimeUnits))
	for i, u := range w.TimeUnits {
		units[i] = model.TimeSlot{StartTime: u.StartTime, EndTime: u.EndTime}
	}
	return model.TimegridDay{Day: w.Day, Units: units}
}

func (w wireHoliday) toModel() model.Holiday {
	return model.Holiday{
		ID:        w.ID,
		Name:      w.Name,
		LongName:  w.LongName,
		StartDate: w.StartDate,
		EndDate:   w.EndDate,
	}
}
