package app_test

import (
	"context"
	"errors"
	"testing"

	"trivia-party-service/internal/app"
	"trivia-party-service/internal/domain"
	"trivia-party-service/internal/infra/memory"
)

func TestProvisionReturnsSameSession(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	first := service.Provision(ctx, "client-1")
	second := service.Provision(ctx, "client-1")
	if first != second {
		t.Fatalf("expected the same session for one client")
	}
	if other := service.Provision(ctx, "client-2"); other == first {
		t.Fatalf("expected separate sessions per client")
	}

	got, err := service.Session("client-1")
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if got != first {
		t.Fatalf("lookup returned a different session")
	}
}

func TestSessionRequiresProvisioning(t *testing.T) {
	service := newTestService()

	_, err := service.Session("nobody")
	if !errors.Is(err, domain.ErrSessionNotProvisioned) {
		t.Fatalf("expected provisioning error, got %v", err)
	}
}

func TestReleaseForgetsSession(t *testing.T) {
	ctx := context.Background()
	recorder := &countingRecorder{}
	service := app.NewGameService(memory.NewSessionStore(), app.NewQuestionSource(domain.DemoQuestions()), app.ServiceOptions{
		Recorder: recorder,
	})

	session := service.Provision(ctx, "client-1")
	session.SetPlayerName("Alice")
	session.CreateRoom()

	service.Release(ctx, "client-1")
	if session.Phase() != domain.PhaseLanding {
		t.Fatalf("expected released session reset to landing, got %s", session.Phase())
	}
	if _, err := service.Session("client-1"); !errors.Is(err, domain.ErrSessionNotProvisioned) {
		t.Fatalf("expected session gone after release, got %v", err)
	}
	if recorder.provisioned != 1 || recorder.released != 1 {
		t.Fatalf("expected one provision and one release, got %+v", recorder)
	}

	service.Release(ctx, "client-1")
	if recorder.released != 1 {
		t.Fatalf("releasing twice must be a no-op")
	}
}

func TestServiceDefaultsApplyToRooms(t *testing.T) {
	ctx := context.Background()
	service := app.NewGameService(memory.NewSessionStore(), app.NewQuestionSource(domain.DemoQuestions()), app.ServiceOptions{
		Defaults: domain.GameSettings{WinningScore: 30, RoundTime: 20},
	})

	session := service.Provision(ctx, "client-1")
	session.SetPlayerName("Alice")
	session.CreateRoom()

	settings := session.Snapshot().Room.Settings
	if settings.WinningScore != 30 || settings.RoundTime != 20 {
		t.Fatalf("expected configured defaults, got %+v", settings)
	}
}

func TestGameEventsReachRecorder(t *testing.T) {
	ctx := context.Background()
	recorder := &countingRecorder{}
	service := app.NewGameService(memory.NewSessionStore(), app.NewQuestionSource(domain.DemoQuestions()), app.ServiceOptions{
		Defaults: domain.GameSettings{WinningScore: 10, RoundTime: 10},
		Recorder: recorder,
	})

	session := service.Provision(ctx, "client-1")
	session.SetPlayerName("Alice")
	session.CreateRoom()
	session.AddBotPlayer()
	session.StartGame()

	session.SubmitAnswer("not the answer")
	session.SubmitAnswer(session.Snapshot().Room.CurrentQuestion.Answer)
	session.NextRound()

	if recorder.started != 1 || recorder.rounds != 1 {
		t.Fatalf("expected one game and one round, got %+v", recorder)
	}
	if recorder.correct != 1 || recorder.wrong != 1 {
		t.Fatalf("expected one correct and one wrong answer, got %+v", recorder)
	}
	if recorder.finished["score"] != 1 {
		t.Fatalf("expected a score finish, got %+v", recorder.finished)
	}
}

func newTestService() *app.GameService {
	return app.NewGameService(memory.NewSessionStore(), app.NewQuestionSource(domain.DemoQuestions()), app.ServiceOptions{})
}

type countingRecorder struct {
	provisioned, released int
	started, rounds       int
	correct, wrong        int
	finished              map[string]int
}

func (r *countingRecorder) SessionProvisioned() { r.provisioned++ }
func (r *countingRecorder) SessionReleased()    { r.released++ }
func (r *countingRecorder) GameStarted()        { r.started++ }
func (r *countingRecorder) RoundStarted()       { r.rounds++ }

func (r *countingRecorder) AnswerSubmitted(correct bool) {
	if correct {
		r.correct++
	} else {
		r.wrong++
	}
}

func (r *countingRecorder) GameFinished(reason string) {
	if r.finished == nil {
		r.finished = map[string]int{}
	}
	r.finished[reason]++
}
