package common

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 110
	footerHeight     = 50
	leftLabelsWidth  = 140
	cellPadding      = 4.0
	entryGap         = 3.0
	slotBorderRadius = 6.0
	shadowOffset     = 2.0
)

// Константы шрифтов
const (
	titleFontSize     = 28.0
	dayFontSize       = 22.0
	holidayFontSize   = 14.0
	slotLabelFontSize = 16.0
	subjectFontSize   = 17.0
	detailFontSize    = 13.0
	legendFontSize    = 14.0
	emptyFontSize     = 30.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	slotLabelColor = color.RGBA{110, 115, 120, 200}
	gridLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 90}
	holidayBgColor = color.NRGBA{180, 215, 255, 160}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{228, 228, 228, 255}

	entryNormalColor      = color.RGBA{255, 255, 255, 255}
	entrySubstitutedColor = color.RGBA{255, 163, 163, 255}
	entryCancelledColor   = color.RGBA{184, 184, 184, 255}
	entryIrregularColor   = color.RGBA{255, 213, 128, 255}
	entryTextColor        = color.RGBA{20, 24, 28, 230}
	entryShadowColor      = color.RGBA{0, 0, 0, 20}
	strikeColor           = color.RGBA{90, 20, 20, 200}
	infoMarkerColor       = color.RGBA{30, 90, 200, 255}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

var (
	fontsOnce   sync.Once
	cachedFonts map[FontStyle]*opentype.Font
)

func parseFonts() {
	cachedFonts = make(map[FontStyle]*opentype.Font)
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		cachedFonts[FontStyleDefault] = f
	}
	if f, err := opentype.Parse(gobold.TTF); err == nil {
		cachedFonts[FontStyleBold] = f
	}
}

// loadFont выставляет шрифт указанного стиля или basicfont как fallback
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	fontsOnce.Do(parseFonts)

	fontStyle := FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	f, ok := cachedFonts[fontStyle]
	if !ok {
		f, ok = cachedFonts[FontStyleDefault]
	}
	if ok {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// weekLayout геометрия сетки: колонки дней и строки слотов
type weekLayout struct {
	dayWidth   float64
	slotHeight float64
	top        float64
}

// GenerateWeekImage рисует неделю: дни по горизонтали, слоты сетки звонков
// по вертикали, уроки одной ячейки рядом друг с другом
func GenerateWeekImage(week *timetable.Week, now time.Time) ([]byte, error) {
	dc := createCanvas()
	drawHeader(dc, week)

	if len(week.Days) == 0 || len(week.Grid) == 0 {
		drawEmptyMessage(dc, "Нет сетки звонков на эту неделю")
		drawLegend(dc)
		return encodeImage(dc)
	}

	layout := weekLayout{
		dayWidth:   float64(imageWidth-leftLabelsWidth) / float64(len(week.Days)),
		slotHeight: float64(imageHeight-headerHeight-footerHeight) / float64(len(week.Grid)),
		top:        headerHeight,
	}

	today := model.DateOf(now)

	drawSlotLabels(dc, week.Grid, layout)
	for dayIdx, day := range week.Days {
		x := float64(leftLabelsWidth) + float64(dayIdx)*layout.dayWidth
		drawDayBackground(dc, x, layout, dayIdx, day, day.Date == today)
		drawDayHeader(dc, day, x, layout)
		drawSlotLines(dc, x, layout, len(week.Grid))

		for slotIdx := range week.Grid {
			drawCell(dc, week.Cell(dayIdx, slotIdx), x, layout.top+float64(slotIdx)*layout.slotHeight, layout)
		}
	}

	if week.Empty() {
		drawEmptyMessage(dc, "Уроков нет")
	}
	drawLegend(dc)

	return encodeImage(dc)
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader заголовок: месяц и диапазон дат
func drawHeader(dc *gg.Context, week *timetable.Week) {
	title := formatting.GetMonthName(week.Start.Month())
	if week.End.Month() != week.Start.Month() {
		title += " - " + formatting.GetMonthName(week.End.Month())
	}
	title = fmt.Sprintf("%s %d   %s", title, week.End.Year(), formatting.FormatWeekRange(week.Start, week.End))

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, 20, 30, 0, 0.5)
}

// drawSlotLabels колонка с временем слотов слева
func drawSlotLabels(dc *gg.Context, grid model.TimeGrid, layout weekLayout) {
	loadFont(dc, slotLabelFontSize)
	dc.SetColor(slotLabelColor)

	for i, slot := range grid {
		y := layout.top + (float64(i)+0.5)*layout.slotHeight
		label := formatting.FormatTimeRange(slot.StartTime, slot.EndTime)
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground фон колонки дня
func drawDayBackground(dc *gg.Context, x float64, layout weekLayout, dayIdx int, day timetable.Day, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case day.IsHoliday():
		dc.SetColor(holidayBgColor)
	case dayIdx%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, layout.top, layout.dayWidth, float64(imageHeight-headerHeight-footerHeight))
	dc.Fill()

	if isToday && day.IsHoliday() {
		dc.SetColor(holidayBgColor)
		dc.DrawRectangle(x, layout.top, layout.dayWidth, 6)
		dc.Fill()
	}
}

// drawDayHeader день недели, дата и название каникул
func drawDayHeader(dc *gg.Context, day timetable.Day, x float64, layout weekLayout) {
	cx := x + layout.dayWidth/2
	label := fmt.Sprintf("%s %s", formatting.GetWeekdayShort(int(day.Date.Weekday())), formatting.FormatShortDate(day.Date))

	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(label, cx, layout.top-40, 0.5, 0.5)

	if day.IsHoliday() {
		loadFont(dc, holidayFontSize)
		dc.DrawStringAnchored(fitText(dc, day.Holiday, layout.dayWidth-10), cx, layout.top-15, 0.5, 0.5)
	}
}

// drawSlotLines горизонтальные линии между слотами
func drawSlotLines(dc *gg.Context, x float64, layout weekLayout, slots int) {
	dc.SetLineWidth(0.3)
	dc.SetColor(gridLineColor)

	for i := 0; i <= slots; i++ {
		y := layout.top + float64(i)*layout.slotHeight
		dc.DrawLine(x, y, x+layout.dayWidth, y)
		dc.Stroke()
	}
	dc.DrawLine(x, layout.top, x, layout.top+float64(slots)*layout.slotHeight)
	dc.Stroke()
}

// drawCell делит ячейку поровну между уроками
func drawCell(dc *gg.Context, entries []timetable.Entry, x, y float64, layout weekLayout) {
	if len(entries) == 0 {
		return
	}

	n := float64(len(entries))
	width := (layout.dayWidth - 2*cellPadding - entryGap*(n-1)) / n
	height := layout.slotHeight - 2*cellPadding

	for i, e := range entries {
		ex := x + cellPadding + float64(i)*(width+entryGap)
		drawEntry(dc, e, ex, y+cellPadding, width, height)
	}
}

// drawEntry рисует один урок
func drawEntry(dc *gg.Context, e timetable.Entry, x, y, w, h float64) {
	fill := entryColor(e.Category)

	// Тень
	dc.SetColor(entryShadowColor)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.75))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, w, h, slotBorderRadius)
	dc.Stroke()

	textW := w - 10
	tx := x + 5

	loadFont(dc, subjectFontSize, FontStyleBold)
	dc.SetColor(entryTextColor)
	subject := fitText(dc, formatting.SubjectOrDefault(e), textW)
	dc.DrawStringAnchored(subject, tx, y+6, 0, 1)

	if e.Category == timetable.CategoryCancelled {
		sw, sh := dc.MeasureString(subject)
		dc.SetColor(strikeColor)
		dc.SetLineWidth(2)
		dc.DrawLine(tx, y+6+sh/2, tx+sw, y+6+sh/2)
		dc.Stroke()
	}

	loadFont(dc, detailFontSize)
	dc.SetColor(entryTextColor)
	lineY := y + 6 + subjectFontSize + 4
	for _, line := range []string{e.Teacher, e.Room} {
		if line == "" || lineY+detailFontSize > y+h {
			continue
		}
		dc.DrawStringAnchored(fitText(dc, line, textW), tx, lineY, 0, 1)
		lineY += detailFontSize + 3
	}

	if e.HasAdditionalInfo {
		dc.SetColor(infoMarkerColor)
		dc.DrawCircle(x+w-8, y+8, 4)
		dc.Fill()
	}
}

// entryColor цвет урока по категории
func entryColor(c timetable.Category) color.RGBA {
	switch c {
	case timetable.CategorySubstituted:
		return entrySubstitutedColor
	case timetable.CategoryCancelled:
		return entryCancelledColor
	case timetable.CategoryIrregular:
		return entryIrregularColor
	default:
		return entryNormalColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// fitText обрезает строку с многоточием, чтобы она влезла в maxWidth
func fitText(dc *gg.Context, s string, maxWidth float64) string {
	if w, _ := dc.MeasureString(s); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return ""
}

// drawEmptyMessage надпись по центру поверх сетки
func drawEmptyMessage(dc *gg.Context, msg string) {
	loadFont(dc, emptyFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(msg, imageWidth/2, imageHeight/2, 0.5, 0.5)
}

// drawLegend легенда внизу
func drawLegend(dc *gg.Context) {
	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"По расписанию", entryNormalColor},
		{"Замена", entrySubstitutedColor},
		{"Отменён", entryCancelledColor},
		{"Нерегулярный", entryIrregularColor},
		{"Есть доп. информация", infoMarkerColor},
	}

	boxW := 20.0
	boxH := 14.0
	liX := float64(leftLabelsWidth)
	liY := float64(imageHeight-footerHeight) + (footerHeight-boxH)/2

	loadFont(dc, legendFontSize)
	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()
		dc.SetColor(darkenColor(color.RGBA{200, 200, 200, 255}, 0.8))
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Stroke()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2, 0, 0.5)
		w, _ := dc.MeasureString(item.Label)
		liX += boxW + 8 + w + 30
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
