package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cinesphere/booking"
	"cinesphere/config"
	"cinesphere/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func newTestModel(t *testing.T) appModel {
	t.Helper()
	setTestDirs(t)
	cfg := config.Config{BasePrice: 14.50, Occupancy: 0, Seed: 1}
	return New(cfg).(appModel)
}

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

func newFilterModel(t *testing.T, items []list.Item) *appModel {
	model := newTestModel(t)
	model.movieList = newList("Now at CineSphere")
	model.movieList.SetItems(items)
	return &model
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newFilterModel(t, []list.Item{
		testItem{value: "Neon Nights"},
		testItem{value: "The Last Duelist"},
	})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.movieList.FilterValue(); got != "n" {
		t.Fatalf("expected filter value to be %q, got %q", "n", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.movieList.FilterValue(); got != "ne" {
		t.Fatalf("expected filter value to be %q, got %q", "ne", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newFilterModel(t, []list.Item{
		testItem{value: "Neon Nights"},
	})

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.movieList.FilterValue(); got != "n" {
		t.Fatalf("expected filter value to be %q, got %q", "n", got)
	}
}

func TestHandleFilterInput_OnlyActiveOnHome(t *testing.T) {
	m := newFilterModel(t, nil)
	m.session.SelectMovie(model.Movie{Id: "1", Title: "Neon Nights"})

	if m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}) {
		t.Fatal("expected filter input to be ignored outside the home screen")
	}
}

func TestSelectMovie_MovesToDetailsAndStartsFetch(t *testing.T) {
	m := newTestModel(t)

	next, cmd, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled {
		t.Fatal("expected enter to be handled")
	}
	if next.session.Step() != booking.StepDetails {
		t.Fatalf("expected details step, got %s", next.session.Step())
	}
	movie := next.session.Movie()
	if movie == nil {
		t.Fatal("expected a selected movie")
	}
	if !next.insightPending[movie.Id] {
		t.Fatal("expected an insight fetch to be pending")
	}
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	if next.session.Date() == "" {
		t.Fatal("expected a default date to be chosen")
	}
}

func TestInsightFetch_NoKeyYieldsMissingKeyRecord(t *testing.T) {
	m := newTestModel(t)

	next, cmd, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch message, got %T", msg)
	}

	var insight insightMsg
	found := false
	for _, c := range batch {
		if c == nil {
			continue
		}
		if im, ok := c().(insightMsg); ok {
			insight = im
			found = true
		}
	}
	if !found {
		t.Fatal("expected an insight message in the batch")
	}
	if insight.movieID != next.session.Movie().Id {
		t.Fatalf("expected insight keyed to %q, got %q", next.session.Movie().Id, insight.movieID)
	}
	if insight.insights.Buzz != "API Key missing. Unable to generate insights." {
		t.Fatalf("unexpected buzz: %q", insight.insights.Buzz)
	}
}

func TestInsightMsg_StaleMovieDoesNotStopLoading(t *testing.T) {
	m := newTestModel(t)
	next, _, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	current := next.session.Movie().Id

	updated, _ := next.Update(insightMsg{movieID: "other", insights: model.Insights{Buzz: "stale"}})
	got := updated.(appModel)

	if !got.insightPending[current] {
		t.Fatal("expected fetch for the current movie to remain pending")
	}
	if !got.insightLoading() {
		t.Fatal("expected the panel to keep loading")
	}
	if _, ok := got.insightCache[current]; ok {
		t.Fatal("stale insight must not be attributed to the current movie")
	}

	updated, _ = got.Update(insightMsg{movieID: current, insights: model.Insights{Buzz: "fresh"}})
	got = updated.(appModel)
	if got.insightLoading() {
		t.Fatal("expected loading to finish for the matching movie")
	}
	if got.insightCache[current].Buzz != "fresh" {
		t.Fatal("expected the matching insight to be cached")
	}
}

func enterBookingStep(t *testing.T, m appModel) appModel {
	t.Helper()
	next, _, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	next, _, _ = next.handleDetailsKey(tea.KeyMsg{Type: tea.KeySpace})
	if next.session.Time() == "" {
		t.Fatal("expected a chosen showtime")
	}
	next, _, handled := next.handleDetailsKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled || next.session.Step() != booking.StepBooking {
		t.Fatalf("expected booking step, got %s", next.session.Step())
	}
	if next.plan == nil {
		t.Fatal("expected a generated seat plan")
	}
	return next
}

func TestBooking_RequiresChosenTime(t *testing.T) {
	m := newTestModel(t)
	next, _, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	next, _, handled := next.handleDetailsKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled {
		t.Fatal("expected enter to be handled")
	}
	if next.session.Step() != booking.StepDetails {
		t.Fatal("expected to stay on details without a chosen time")
	}
}

func TestBooking_ToggleAndConfirmFlow(t *testing.T) {
	m := enterBookingStep(t, newTestModel(t))

	// Cursor starts at A1; occupancy is zero so the seat is available.
	m, _, _ = m.handleBookingKey(tea.KeyMsg{Type: tea.KeySpace})
	if len(m.plan.Selected()) != 1 || m.plan.Selected()[0].Id != "A1" {
		t.Fatalf("expected A1 selected, got %+v", m.plan.Selected())
	}

	m, _, _ = m.handleBookingKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m, _, _ = m.handleBookingKey(tea.KeyMsg{Type: tea.KeySpace})
	if len(m.plan.Selected()) != 2 {
		t.Fatalf("expected two seats selected, got %d", len(m.plan.Selected()))
	}

	m, _, _ = m.handleBookingKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if m.session.Step() != booking.StepConfirmation {
		t.Fatalf("expected confirmation step, got %s", m.session.Step())
	}
	seats := m.session.Seats()
	if len(seats) != 2 || seats[0].Id != "A1" || seats[1].Id != "A2" {
		t.Fatalf("unexpected confirmed seats: %+v", seats)
	}
	if m.session.Total() != 29.0 {
		t.Fatalf("expected total 29.00, got %.2f", m.session.Total())
	}
	if m.session.Reference() == "" {
		t.Fatal("expected a booking reference")
	}
	if m.plan != nil {
		t.Fatal("expected the plan to be discarded after confirmation")
	}
}

func TestBooking_ConfirmDisabledWhenEmpty(t *testing.T) {
	m := enterBookingStep(t, newTestModel(t))

	m, _, _ = m.handleBookingKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if m.session.Step() != booking.StepBooking {
		t.Fatal("expected confirm to be a no-op with an empty selection")
	}
}

func TestBooking_EscDiscardsPlan(t *testing.T) {
	m := enterBookingStep(t, newTestModel(t))
	m, _, _ = m.handleBookingKey(tea.KeyMsg{Type: tea.KeySpace})

	m, _, _ = m.goBack()
	if m.session.Step() != booking.StepDetails {
		t.Fatalf("expected details step, got %s", m.session.Step())
	}
	if m.plan != nil {
		t.Fatal("expected the plan to be discarded on back")
	}
}

func TestConfirmation_ReturnHomeClearsSession(t *testing.T) {
	m := enterBookingStep(t, newTestModel(t))
	m, _, _ = m.handleBookingKey(tea.KeyMsg{Type: tea.KeySpace})
	m, _, _ = m.handleBookingKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	m, _, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Step() != booking.StepHome {
		t.Fatalf("expected home step, got %s", m.session.Step())
	}
	if m.session.Movie() != nil {
		t.Fatal("expected the movie to be cleared")
	}
	if len(m.session.Seats()) != 0 {
		t.Fatal("expected seats to be cleared")
	}
}
