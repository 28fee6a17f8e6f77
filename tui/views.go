package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"cinesphere/booking"
	"cinesphere/catalog"
	"cinesphere/model"
)

func (m appModel) View() string {
	header := m.headerView()
	switch m.session.Step() {
	case booking.StepHome:
		return header + "\n\n" + m.movieList.View()
	case booking.StepDetails:
		return header + "\n\n" + m.detailsView()
	case booking.StepBooking:
		return header + "\n\n" + m.renderSeatMap()
	case booking.StepConfirmation:
		return header + "\n\n" + m.confirmationView()
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("CineSphere")
	sub := []string{}
	if movie := m.session.Movie(); movie != nil {
		sub = append(sub, fmt.Sprintf("Movie: %s", movie.Title))
	}
	if m.session.Date() != "" {
		sub = append(sub, fmt.Sprintf("Date: %s", m.session.Date()))
	}
	if m.session.Time() != "" {
		sub = append(sub, fmt.Sprintf("Time: %s", m.session.Time()))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • type to filter • enter view movie"
	switch m.session.Step() {
	case booking.StepDetails:
		hints = "ctrl+c quit • esc back • ←/→ pick time • space choose • tab date • enter select seats"
	case booking.StepBooking:
		hints = "ctrl+c quit • esc back • arrows move • space toggle seat • c confirm • n toggle numbers"
	case booking.StepConfirmation:
		hints = "ctrl+c quit • enter/esc return home"
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

// --- home ---

type movieItem struct {
	movie model.Movie
}

func (i movieItem) Title() string {
	if i.movie.IsPremiere {
		return fmt.Sprintf("%s ★ Premiere", i.movie.Title)
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	parts := []string{
		fmt.Sprintf("%.1f", i.movie.Rating),
		strings.Join(i.movie.Genre, "/"),
		i.movie.Duration,
	}
	if len(i.movie.Tags) > 0 {
		parts = append(parts, strings.Join(i.movie.Tags, ", "))
	}
	return strings.Join(parts, " • ")
}

func (i movieItem) FilterValue() string {
	parts := append([]string{i.movie.Title}, i.movie.Genre...)
	parts = append(parts, i.movie.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func buildMovieItems() []list.Item {
	var items []list.Item
	for _, movie := range catalog.Premieres() {
		items = append(items, movieItem{movie: movie})
	}
	for _, movie := range catalog.NowShowing() {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

// --- details ---

func (m appModel) detailsView() string {
	movie := m.session.Movie()
	if movie == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(movie.Title))
	b.WriteString("\n")
	b.WriteString(hint(fmt.Sprintf("★ %.1f • %s • %s", movie.Rating, movie.Duration, strings.Join(movie.Genre, " / "))))
	b.WriteString("\n")
	if len(movie.Tags) > 0 {
		b.WriteString(hint(strings.Join(movie.Tags, " • ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("AI Analysis"))
	b.WriteString("\n")
	b.WriteString(m.insightPanel(movie))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Synopsis"))
	b.WriteString("\n")
	b.WriteString(movie.Description)
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Showtime"))
	b.WriteString("\n")
	b.WriteString(m.showtimePicker())
	b.WriteString("\n\n")

	if m.session.Time() == "" {
		b.WriteString(hint("Choose a time to enable seat selection."))
	} else {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Press enter to select seats."))
	}
	return b.String()
}

func (m appModel) insightPanel(movie *model.Movie) string {
	if m.insightPending[movie.Id] {
		return fmt.Sprintf("%s Generating insights...", m.spinner.View())
	}
	insights, ok := m.insightCache[movie.Id]
	if !ok {
		return hint("AI insights unavailable.")
	}

	buzzStyle := lipgloss.NewStyle().Italic(true)
	moodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	var b strings.Builder
	b.WriteString(buzzStyle.Render(fmt.Sprintf("%q", insights.Buzz)))
	b.WriteString("\n")
	b.WriteString(moodStyle.Render(strings.Join(insights.Mood, " • ")))
	b.WriteString("\n")
	b.WriteString(hint("Critics say: " + insights.ReviewSummary))
	return b.String()
}

func (m appModel) showtimePicker() string {
	chosenDate := m.session.Date()
	dateParts := make([]string, 0, len(m.dates))
	for _, date := range m.dates {
		if date == chosenDate {
			dateParts = append(dateParts, lipgloss.NewStyle().Bold(true).Underline(true).Render(date))
		} else {
			dateParts = append(dateParts, hint(date))
		}
	}

	chosenTime := m.session.Time()
	chosenStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")).Padding(0, 1)
	focusStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	plainStyle := lipgloss.NewStyle().Faint(true).Padding(0, 1)

	timeParts := make([]string, 0, len(m.times))
	for i, t := range m.times {
		switch {
		case t == chosenTime:
			timeParts = append(timeParts, chosenStyle.Render(t))
		case i == m.timeFocus:
			timeParts = append(timeParts, focusStyle.Render("> "+t))
		default:
			timeParts = append(timeParts, plainStyle.Render(t))
		}
	}

	return strings.Join(dateParts, "  ") + "\n" + strings.Join(timeParts, " ")
}

// --- booking ---

func (m appModel) renderSeatMap() string {
	if m.plan == nil {
		return "No seat map data."
	}
	layout := m.plan.Layout()

	seatStyleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleVIP := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	seatStyleOccupied := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	cellWidth := 2
	if m.showSeatNumbers {
		cellWidth = 3
	}

	var b strings.Builder

	screenBar := screenBarBlock(layout.Columns*(cellWidth+1)-1, "SCREEN")
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))

	b.WriteString(strings.Repeat(" ", 2))
	b.WriteString(screenBorderStyle.Render(screenBar.top))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", 2))
	b.WriteString(screenStyle.Render(screenBar.mid))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", 2))
	b.WriteString(screenBorderStyle.Render(screenBar.bot))
	b.WriteString("\n\n")

	for r := 0; r < layout.Rows; r++ {
		var row string
		for c := 1; c <= layout.Columns; c++ {
			seat, ok := m.plan.At(r, c)
			if !ok {
				continue
			}
			text := seatToken(seat)
			if m.showSeatNumbers && seat.Status != model.SeatOccupied {
				text = padCell(fmt.Sprintf("%d", seat.Number), cellWidth)
			} else {
				text = padCell(text, cellWidth)
			}

			var rendered string
			switch {
			case seat.Status == model.SeatOccupied:
				rendered = seatStyleOccupied.Render(text)
			case seat.Status == model.SeatSelected:
				rendered = seatStyleSelected.Render(text)
			case seat.Type == model.SeatVIP:
				rendered = seatStyleVIP.Render(text)
			default:
				rendered = seatStyleAvailable.Render(text)
			}
			if r == m.cursorRow && c == m.cursorCol {
				rendered = cursorStyle.Render(text)
			}

			row += rendered
			if c < layout.Columns {
				row += " "
			}
		}
		rowName := m.plan.Seats()[r*layout.Columns].Row
		b.WriteString(fmt.Sprintf("%s %s %s\n", rowName, row, rowName))
	}

	selected := m.plan.Selected()
	ids := make([]string, 0, len(selected))
	for _, seat := range selected {
		ids = append(ids, seat.Id)
	}

	legend := "Legend: [] standard • [] VIP (yellow, rows G-H) • XX occupied • () selected"
	if m.showSeatNumbers {
		legend = "Legend: color shows status • numbers are seat columns • XX occupied"
	}
	counts := fmt.Sprintf("Selected: %s • Total: $%.2f", strings.Join(ids, ", "), m.plan.Total())
	if len(selected) == 0 {
		counts = "Selected: none • pick at least one seat to confirm"
	}

	b.WriteString("\n")
	b.WriteString(hint(legend))
	b.WriteString("\n")
	b.WriteString(hint(counts))
	return b.String()
}

func seatToken(seat model.Seat) string {
	switch seat.Status {
	case model.SeatOccupied:
		return "XX"
	case model.SeatSelected:
		return "()"
	default:
		return "[]"
	}
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}

// --- confirmation ---

func (m appModel) confirmationView() string {
	movie := m.session.Movie()
	if movie == nil {
		return ""
	}

	seats := m.session.Seats()
	ids := make([]string, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.Id)
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("2")).
		Padding(0, 2)

	var lines []string
	lines = append(lines, titleStyle.Render("Booking Confirmed!"))
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(movie.Title))
	lines = append(lines, hint(fmt.Sprintf("%s • %s • CineSphere Downtown", m.session.Date(), m.session.Time())))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Seats: %s", strings.Join(ids, ", ")))
	lines = append(lines, fmt.Sprintf("Total Paid: $%.2f", m.session.Total()))
	lines = append(lines, "")
	lines = append(lines, hint(fmt.Sprintf("Ref: %s", m.session.Reference())))
	lines = append(lines, "")
	lines = append(lines, hint("Press enter to return home."))

	panelStyle := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("2")).
		MarginTop(1)
	panel := panelStyle.Render(strings.Join(lines, "\n"))
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}
