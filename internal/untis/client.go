package untis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/metrics"
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

const (
	DefaultSchoolQueryURL = "https://mobile.webuntis.com/ms/schoolquery2"

	sessionCookie = "JSESSIONID"
	rpcPath       = "/WebUntis/jsonrpc.do"
)

// Client клиент JSON-RPC API WebUntis. Не хранит состояния сессии:
// все вызовы получают *Session явно.
type Client struct {
	httpClient     *http.Client
	clientName     string
	schoolQueryURL string
	logger         *zap.Logger
}

type Option func(*Client)

// WithHTTPClient подменяет http-клиент (редиректы всё равно не выполняются)
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithSchoolQueryURL(u string) Option {
	return func(cl *Client) {
		cl.schoolQueryURL = u
	}
}

func NewClient(timeout time.Duration, clientName string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: timeout},
		clientName:     clientName,
		schoolQueryURL: DefaultSchoolQueryURL,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	noRedirect := *c.httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	c.httpClient = &noRedirect

	return c
}

// Authenticate выполняет вход и возвращает новую сессию
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	s := &Session{Server: creds.Server, School: creds.School}

	var res authResult
	err := c.call(ctx, s, "authenticate", authParams{
		User:     creds.Username,
		Password: creds.Password,
		Client:   c.clientName,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.SessionID == "" {
		return nil, ErrAuthFailed
	}

	s.setID(res.SessionID)
	s.PersonID = res.PersonID
	s.PersonType = res.PersonType
	s.KlasseID = res.KlasseID

	return s, nil
}

// Logout завершает сессию на сервере
func (c *Client) Logout(ctx context.Context, s *Session) error {
	if err := c.call(ctx, s, "logout", struct{}{}, nil); err != nil {
		return err
	}
	s.setID("")
	return nil
}

// Timetable уроки пользователя сессии за период [from, to]
func (c *Client) Timetable(ctx context.Context, s *Session, from, to model.Date) ([]model.Lesson, error) {
	params := timetableParams{Options: timetableOptions{
		Element:          element{ID: s.PersonID, Type: s.PersonType},
		StartDate:        from,
		EndDate:          to,
		ShowInfo:         true,
		ShowSubstText:    true,
		ShowLsText:       true,
		ShowLsNumber:     true,
		ShowStudentgroup: true,
		ShowBooking:      true,
		TeacherFields:    elementFields,
		RoomFields:       elementFields,
		SubjectFields:    elementFields,
		KlasseFields:     elementFields,
	}}

	var res []wireLesson
	if err := c.call(ctx, s, "getTimetable", params, &res); err != nil {
		return nil, err
	}

	lessons := make([]model.Lesson, len(res))
	for i, w := range res {
		lessons[i] = w.toModel()
	}
	return lessons, nil
}

// Timegrid сетка звонков по дням недели
func (c *Client) Timegrid(ctx context.Context, s *Session) ([]model.TimegridDay, error) {
	var res []wireTimegridDay
	if err := c.call(ctx, s, "getTimegridUnits", struct{}{}, &res); err != nil {
		return nil, err
	}

	days := make([]model.TimegridDay, len(res))
	for i, w := range res {
		days[i] = w.toModel()
	}
	return days, nil
}

func (c *Client) Holidays(ctx context.Context, s *Session) ([]model.Holiday, error) {
	var res []wireHoliday
	if err := c.call(ctx, s, "getHolidays", struct{}{}, &res); err != nil {
		return nil, err
	}

	holidays := make([]model.Holiday, len(res))
	for i, w := range res {
		holidays[i] = w.toModel()
	}
	return holidays, nil
}

func (c *Client) CurrentSchoolYear(ctx context.Context, s *Session) (model.SchoolYear, error) {
	var res wireSchoolYear
	if err := c.call(ctx, s, "getCurrentSchoolyear", struct{}{}, &res); err != nil {
		return model.SchoolYear{}, err
	}
	return model.SchoolYear{
		ID:        res.ID,
		Name:      res.Name,
		StartDate: res.StartDate,
		EndDate:   res.EndDate,
	}, nil
}

// LatestImportTime время последнего обновления данных на сервере
func (c *Client) LatestImportTime(ctx context.Context, s *Session) (time.Time, error) {
	var ms int64
	if err := c.call(ctx, s, "getLatestImportTime", struct{}{}, &ms); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// SearchSchools ищет школы по названию или городу. Сессия не нужна.
func (c *Client) SearchSchools(ctx context.Context, query string) ([]model.School, error) {
	var res searchResult
	err := c.post(ctx, nil, c.schoolQueryURL, "searchSchool", []searchParams{{Search: query}}, &res)
	if err != nil {
		return nil, err
	}

	schools := make([]model.School, len(res.Schools))
	for i, w := range res.Schools {
		schools[i] = model.School{
			Server:      w.Server,
			LoginName:   w.LoginName,
			DisplayName: w.DisplayName,
			Address:     w.Address,
		}
	}
	return schools, nil
}

func (c *Client) call(ctx context.Context, s *Session, method string, params, out any) error {
	return c.post(ctx, s, endpoint(s.Server, s.School), method, params, out)
}

func (c *Client) post(ctx context.Context, s *Session, endpointURL, method string, params, out any) (err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveUntis(method, started, err)
		if err != nil {
			c.logger.Debug("untis call failed",
				zap.String("method", method),
				zap.Duration("took", time.Since(started)),
				zap.Error(err),
			)
		}
	}()

	payload, err := json.Marshal(rpcRequest{
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
		JSONRPC: "2.0",
	})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if s != nil {
		if id := s.ID(); id != "" {
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: id})
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("untis %s: %w", method, err)
	}
	defer resp.Body.Close()

	if s != nil {
		for _, cookie := range resp.Cookies() {
			if cookie.Name == sessionCookie && cookie.Value != "" {
				s.setID(cookie.Value)
			}
		}
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("untis %s: %w: %d", method, ErrUnexpectedStatus, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out == nil || len(rpcResp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// endpoint адрес JSON-RPC. Сервер без схемы считается https-хостом.
func endpoint(server, school string) string {
	base := server
	if !strings.Contains(server, "://") {
		base = "https://" + server
	}
	return strings.TrimRight(base, "/") + rpcPath + "?school=" + url.QueryEscape(school)
}
