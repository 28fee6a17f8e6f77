package tui

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinesphere/booking"
	"cinesphere/catalog"
	"cinesphere/config"
	"cinesphere/model"
	"cinesphere/seatmap"
	"cinesphere/service"
	"cinesphere/store"
)

type appModel struct {
	cfg      config.Config
	insights *service.Client

	session *booking.Session

	width  int
	height int

	movieList list.Model
	spinner   spinner.Model

	// Fetched insights keyed by movie id. A result is cached whenever it
	// arrives, but only rendered when its key matches the movie currently
	// on screen, so a stale response can never clobber the details panel.
	insightCache   map[string]model.Insights
	insightPending map[string]bool

	dates     []string
	times     []string
	dateIndex int
	timeFocus int

	plan            *seatmap.Plan
	cursorRow       int
	cursorCol       int
	showSeatNumbers bool
}

type insightMsg struct {
	movieID  string
	insights model.Insights
}

// New builds the app model at the home screen.
func New(cfg config.Config) tea.Model {
	client := service.NewClient(cfg.GeminiAPIKey, nil)
	client.SetDebug(cfg.Debug)

	m := appModel{
		cfg:      cfg,
		insights: client,
		session:  booking.NewSession(),

		insightCache:   make(map[string]model.Insights),
		insightPending: make(map[string]bool),

		dates: catalog.Dates(time.Now()),
		times: catalog.Showtimes(),

		showSeatNumbers: true,
		cursorCol:       1,
	}

	m.movieList = newList("Now at CineSphere")
	m.movieList.SetItems(buildMovieItems())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.insightLoading() {
			return m, cmd
		}
		return m, nil

	case insightMsg:
		m.insightCache[msg.movieID] = msg.insights
		delete(m.insightPending, msg.movieID)
		return m, nil
	}

	if m.session.Step() == booking.StepHome {
		var cmd tea.Cmd
		m.movieList, cmd = m.movieList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		return m.goBack()
	}

	switch m.session.Step() {
	case booking.StepHome:
		if msg.Type == tea.KeyEnter {
			return m.selectMovieFromList()
		}
	case booking.StepDetails:
		return m.handleDetailsKey(msg)
	case booking.StepBooking:
		return m.handleBookingKey(msg)
	case booking.StepConfirmation:
		if msg.Type == tea.KeyEnter {
			return m.goBack()
		}
	}
	return m, nil, false
}

func (m appModel) selectMovieFromList() (appModel, tea.Cmd, bool) {
	item, ok := m.movieList.SelectedItem().(movieItem)
	if !ok {
		return m, nil, true
	}
	if !m.session.SelectMovie(item.movie) {
		return m, nil, true
	}
	m.dateIndex = 0
	m.timeFocus = 0
	m.session.ChooseDate(m.dates[0])

	if _, ok := m.insightCache[item.movie.Id]; ok {
		return m, nil, true
	}
	m.insightPending[item.movie.Id] = true
	return m, tea.Batch(m.fetchInsightsCmd(item.movie), m.spinner.Tick), true
}

func (m appModel) handleDetailsKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "left", "h":
		if m.timeFocus > 0 {
			m.timeFocus--
		}
		return m, nil, true
	case "right", "l":
		if m.timeFocus < len(m.times)-1 {
			m.timeFocus++
		}
		return m, nil, true
	case "tab":
		m.dateIndex = (m.dateIndex + 1) % len(m.dates)
		m.session.ChooseDate(m.dates[m.dateIndex])
		return m, nil, true
	case " ":
		m.session.ChooseTime(m.times[m.timeFocus])
		return m, nil, true
	}

	if msg.Type == tea.KeyEnter {
		if m.session.Time() == "" {
			// Seat selection stays disabled until a showtime is chosen.
			return m, nil, true
		}
		return m.enterBooking()
	}
	return m, nil, false
}

func (m appModel) enterBooking() (appModel, tea.Cmd, bool) {
	if !m.session.StartBooking() {
		return m, nil, true
	}

	// The map is generated fresh on every entry; no seat hold survives
	// leaving this screen.
	layout := seatmap.DefaultLayout()
	layout.Occupancy = m.cfg.Occupancy

	var rng *rand.Rand
	if m.cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(m.cfg.Seed))
	}
	m.plan = seatmap.NewPlan(layout, seatmap.Generate(layout, m.cfg.BasePrice, rng))
	m.cursorRow = 0
	m.cursorCol = 1
	return m, nil, true
}

func (m appModel) handleBookingKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if m.plan == nil {
		return m, nil, true
	}
	layout := m.plan.Layout()

	switch msg.String() {
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
		return m, nil, true
	case "down", "j":
		if m.cursorRow < layout.Rows-1 {
			m.cursorRow++
		}
		return m, nil, true
	case "left", "h":
		if m.cursorCol > 1 {
			m.cursorCol--
		}
		return m, nil, true
	case "right", "l":
		if m.cursorCol < layout.Columns {
			m.cursorCol++
		}
		return m, nil, true
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
		return m, nil, true
	case " ", "enter":
		if seat, ok := m.plan.At(m.cursorRow, m.cursorCol); ok {
			m.plan.Toggle(seat.Id)
		}
		return m, nil, true
	case "c":
		return m.confirmSelection()
	}
	return m, nil, false
}

func (m appModel) confirmSelection() (appModel, tea.Cmd, bool) {
	if m.plan == nil || len(m.plan.Selected()) == 0 {
		// Confirmation is disabled while nothing is selected.
		return m, nil, true
	}
	seats := m.plan.Confirm()
	if !m.session.ConfirmSeats(seats) {
		return m, nil, true
	}
	m.plan = nil

	ids := make([]string, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.Id)
	}
	_ = store.RememberBooking(store.Receipt{
		Reference:  m.session.Reference(),
		MovieID:    m.session.Movie().Id,
		MovieTitle: m.session.Movie().Title,
		Date:       m.session.Date(),
		Time:       m.session.Time(),
		Seats:      ids,
		Total:      m.session.Total(),
		BookedAt:   time.Now(),
	})
	return m, nil, true
}

func (m appModel) goBack() (appModel, tea.Cmd, bool) {
	switch m.session.Step() {
	case booking.StepBooking:
		m.plan = nil
	case booking.StepConfirmation, booking.StepDetails:
		m.dateIndex = 0
		m.timeFocus = 0
	}
	m.session.Back()
	return m, nil, true
}

func (m appModel) fetchInsightsCmd(movie model.Movie) tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadInsightCache(movie.Id); err == nil && fresh {
			return insightMsg{movieID: movie.Id, insights: cached}
		}
		ctx := context.Background()
		insights := m.insights.MovieInsights(ctx, movie.Title)
		_ = store.SaveInsightCache(movie.Id, insights)
		return insightMsg{movieID: movie.Id, insights: insights}
	}
}

func (m appModel) insightLoading() bool {
	movie := m.session.Movie()
	if movie == nil || m.session.Step() != booking.StepDetails {
		return false
	}
	return m.insightPending[movie.Id]
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	if m.session.Step() == booking.StepHome {
		return &m.movieList
	}
	return nil
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}
