package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"weeklytask/internal/storage"
)

// Wednesday.
var testNow = time.Date(2025, time.January, 8, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	return openTestService(t, path), path
}

func openTestService(t *testing.T, path string) *Service {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	n := 0
	svc := NewService(
		storage.NewDocumentRepo(db, "", 0),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func setupChild(t *testing.T, svc *Service, grade string) {
	t.Helper()
	child := storage.Child{Name: "Hana", Grade: grade, StartDate: "2025-04-01"}
	if err := svc.CompleteSetup(context.Background(), child, false, 1); err != nil {
		t.Fatalf("CompleteSetup: %v", err)
	}
}

func addTask(t *testing.T, svc *Service, id string, weekDays ...int) storage.Task {
	t.Helper()
	task := NewTask(id, TaskInput{Title: "Task " + id, Color: "#2563EB", Unit: "pages", WeekDays: weekDays})
	if err := svc.AddTask(context.Background(), task); err != nil {
		t.Fatalf("AddTask %s: %v", id, err)
	}
	return task
}

func bundleOf(d storage.AppData) storage.GradeData {
	return activeBundle(&d, "")
}

var equateEmpty = cmpopts.EquateEmpty()

func TestRoundTripPersistence(t *testing.T) {
	svc, path := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "G1")

	addTask(t, svc, "t1", 1, 3)
	if _, err := svc.ToggleComplete(ctx, "t1", "2025-01-06"); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	amount := 12.0
	if _, err := svc.FinishTimer(ctx, "t1", "2025-01-08", 25, "ch.3", &amount); err != nil {
		t.Fatalf("FinishTimer: %v", err)
	}
	if err := svc.UpdateDailyMemo(ctx, "2025-01-06", "good focus"); err != nil {
		t.Fatalf("UpdateDailyMemo: %v", err)
	}
	if err := svc.AddIrregularTask(ctx, "2025-01-07", "t1"); err != nil {
		t.Fatalf("AddIrregularTask: %v", err)
	}
	if err := svc.AddTaskOrder(ctx, "2025-01-06", []string{"t1"}); err != nil {
		t.Fatalf("AddTaskOrder: %v", err)
	}
	if err := svc.UpdateGoals(ctx, storage.Goal{OneYear: "read 20 books"}); err != nil {
		t.Fatalf("UpdateGoals: %v", err)
	}
	if err := svc.SwitchGrade(ctx, "G2", "2026-04-01", 0); err != nil {
		t.Fatalf("SwitchGrade: %v", err)
	}
	addTask(t, svc, "t2", 2)

	reloaded := openTestService(t, path)
	if diff := cmp.Diff(svc.Data(), reloaded.Data(), equateEmpty); diff != "" {
		t.Fatalf("reloaded document differs (-want +got):\n%s", diff)
	}
}

func TestGradeIsolationRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "G1")

	addTask(t, svc, "t1", 1)
	if _, err := svc.ToggleComplete(ctx, "t1", "2025-01-06"); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if err := svc.UpdateDailyMemo(ctx, "2025-01-06", "memo"); err != nil {
		t.Fatalf("UpdateDailyMemo: %v", err)
	}
	if err := svc.UpdateGoals(ctx, storage.Goal{OneYear: "a", ThreeYears: "b", FiveYears: "c"}); err != nil {
		t.Fatalf("UpdateGoals: %v", err)
	}
	before := svc.Data()

	if err := svc.SwitchGrade(ctx, "G2", "2026-04-01", 0); err != nil {
		t.Fatalf("SwitchGrade G2: %v", err)
	}
	if got := svc.Data(); len(got.Tasks) != 0 || len(got.Records) != 0 {
		t.Fatalf("G2 should start empty, got %d tasks %d records", len(got.Tasks), len(got.Records))
	}

	if err := svc.SwitchGrade(ctx, "G1", "2025-05-01", 6); err != nil {
		t.Fatalf("SwitchGrade G1: %v", err)
	}
	after := svc.Data()
	if diff := cmp.Diff(bundleOf(before), bundleOf(after), equateEmpty); diff != "" {
		t.Fatalf("G1 bundle changed across switches (-want +got):\n%s", diff)
	}
	if after.Child.StartDate != "2025-05-01" {
		t.Fatalf("child start=%q, want 2025-05-01", after.Child.StartDate)
	}
	if after.Settings.WeekStart != 6 {
		t.Fatalf("weekStart=%d, want 6", after.Settings.WeekStart)
	}
	if after.Settings.CurrentGrade != "G1" || after.Child.Grade != "G1" {
		t.Fatalf("current grade=%q/%q, want G1", after.Settings.CurrentGrade, after.Child.Grade)
	}
}

func TestArchiveOnSwitchAwayOverwrites(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "A")
	t1 := addTask(t, svc, "t1", 1)

	if err := svc.SwitchGrade(ctx, "B", "2026-04-01", 1); err != nil {
		t.Fatalf("A->B: %v", err)
	}
	t2 := addTask(t, svc, "t2", 2)
	if err := svc.SwitchGrade(ctx, "A", "2025-04-01", 1); err != nil {
		t.Fatalf("B->A: %v", err)
	}
	if err := svc.SwitchGrade(ctx, "B", "2026-04-01", 1); err != nil {
		t.Fatalf("A->B again: %v", err)
	}

	got := svc.Data()
	if diff := cmp.Diff([]storage.Task{t2}, got.Tasks); diff != "" {
		t.Fatalf("B tasks (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]storage.Task{t1}, got.GradeDataMap["A"].Tasks); diff != "" {
		t.Fatalf("archived A tasks (-want +got):\n%s", diff)
	}
}

func TestArchivedBundleDoesNotAliasActive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "A")
	addTask(t, svc, "t1", 1)

	if err := svc.SwitchGrade(ctx, "B", "2026-04-01", 1); err != nil {
		t.Fatalf("A->B: %v", err)
	}
	if err := svc.SwitchGrade(ctx, "A", "2025-04-01", 1); err != nil {
		t.Fatalf("B->A: %v", err)
	}
	title := "renamed"
	if err := svc.UpdateTask(ctx, "t1", TaskPatch{Title: &title, WeekDays: []int{5}}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	stale := svc.Data().GradeDataMap["A"].Tasks[0]
	if stale.Title != "Task t1" || !stale.HasWeekDay(1) || stale.HasWeekDay(5) {
		t.Fatalf("archived copy was mutated through the active bundle: %+v", stale)
	}
}

func TestEmptyGradeSynthesis(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "G1")
	addTask(t, svc, "t1", 1)

	if err := svc.SwitchGrade(ctx, "never-seen", "2030-04-01", 0); err != nil {
		t.Fatalf("SwitchGrade: %v", err)
	}
	want := emptyGradeData("")
	if diff := cmp.Diff(want, bundleOf(svc.Data()), equateEmpty); diff != "" {
		t.Fatalf("synthesized bundle (-want +got):\n%s", diff)
	}
	g, ok := svc.GradeBundle("never-seen")
	if !ok || g.StartDate != "2030-04-01" {
		t.Fatalf("GradeBundle start=%q ok=%v, want 2030-04-01", g.StartDate, ok)
	}

	if err := svc.SwitchGrade(ctx, "G1", "2025-04-01", 1); err != nil {
		t.Fatalf("back to G1: %v", err)
	}
	archived, ok := svc.GradeBundle("never-seen")
	if !ok || archived.StartDate != "2030-04-01" {
		t.Fatalf("archived start=%q ok=%v, want 2030-04-01", archived.StartDate, ok)
	}
}

func TestSwitchToSameGradeOnlyUpdatesDates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "G1")
	task := addTask(t, svc, "t1", 1)

	if err := svc.SwitchGrade(ctx, "G1", "2025-06-01", 0); err != nil {
		t.Fatalf("SwitchGrade: %v", err)
	}
	got := svc.Data()
	if diff := cmp.Diff([]storage.Task{task}, got.Tasks); diff != "" {
		t.Fatalf("tasks (-want +got):\n%s", diff)
	}
	if got.Child.StartDate != "2025-06-01" || got.Settings.WeekStart != 0 {
		t.Fatalf("start=%q weekStart=%d", got.Child.StartDate, got.Settings.WeekStart)
	}
	if _, ok := got.GradeDataMap["G1"]; !ok {
		t.Fatalf("expected G1 to be archived under its own label")
	}
}

func TestSwitchGradeWithoutChildSkipsArchive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	addTask(t, svc, "t1", 1)

	if err := svc.SwitchGrade(ctx, "G1", "2025-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade: %v", err)
	}
	got := svc.Data()
	if got.Child != nil {
		t.Fatalf("child should stay nil")
	}
	if len(got.GradeDataMap) != 0 {
		t.Fatalf("nothing should be archived, got %v", got.GradeDataMap)
	}
	if len(got.Tasks) != 0 || got.Settings.CurrentGrade != "G1" {
		t.Fatalf("tasks=%d grade=%q", len(got.Tasks), got.Settings.CurrentGrade)
	}
}

func TestSwitchToEmptyGradeLabel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "G1")
	task := addTask(t, svc, "t1", 1)

	if err := svc.SwitchGrade(ctx, "", "2025-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade empty: %v", err)
	}
	got := svc.Data()
	if got.Child.Grade != "" || got.Settings.CurrentGrade != "" || len(got.Tasks) != 0 {
		t.Fatalf("unexpected state after empty switch: %+v", got.Child)
	}

	// The empty label is never archived, so its data is not kept.
	addTask(t, svc, "t2", 2)
	if err := svc.SwitchGrade(ctx, "G1", "2025-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade G1: %v", err)
	}
	got = svc.Data()
	if diff := cmp.Diff([]storage.Task{task}, got.Tasks); diff != "" {
		t.Fatalf("G1 tasks (-want +got):\n%s", diff)
	}
	if _, ok := got.GradeDataMap[""]; ok {
		t.Fatalf("empty label should not be archived")
	}
}

func TestGradesListing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "B")
	addTask(t, svc, "t1", 1)
	if _, err := svc.ToggleComplete(ctx, "t1", "2025-01-06"); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if err := svc.SwitchGrade(ctx, "A", "2026-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade: %v", err)
	}
	if err := svc.SwitchGrade(ctx, "C", "2027-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade: %v", err)
	}

	got := svc.Grades()
	want := []GradeSummary{
		{Grade: "C", Active: true, StartDate: "2027-04-01"},
		{Grade: "A", StartDate: "2026-04-01"},
		{Grade: "B", StartDate: "2025-04-01", Tasks: 1, Records: 1, Completed: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Grades (-want +got):\n%s", diff)
	}
}

func TestDeleteTaskCascadesRecords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	addTask(t, svc, "t1", 1)
	keep := addTask(t, svc, "t2", 1)

	for _, r := range []storage.Record{
		{ID: "r1", Date: "2025-01-06", TaskID: "t1"},
		{ID: "r2", Date: "2025-01-13", TaskID: "t1"},
		{ID: "r3", Date: "2025-01-06", TaskID: "t2", Completed: true},
	} {
		if err := svc.AddRecord(ctx, r); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}
	if err := svc.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	got := svc.Data()
	if diff := cmp.Diff([]storage.Task{keep}, got.Tasks); diff != "" {
		t.Fatalf("tasks (-want +got):\n%s", diff)
	}
	want := []storage.Record{{ID: "r3", Date: "2025-01-06", TaskID: "t2", Completed: true}}
	if diff := cmp.Diff(want, got.Records); diff != "" {
		t.Fatalf("records (-want +got):\n%s", diff)
	}
}

func TestUpdateMissingIDsAreIgnored(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task := addTask(t, svc, "t1", 1)
	before := svc.Data()

	title := "x"
	if err := svc.UpdateTask(ctx, "nope", TaskPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	done := true
	if err := svc.UpdateRecord(ctx, "nope", RecordPatch{Completed: &done}); err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if err := svc.DeleteTask(ctx, "nope"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if diff := cmp.Diff(before, svc.Data(), equateEmpty); diff != "" {
		t.Fatalf("document changed (-want +got):\n%s", diff)
	}
	if got := svc.Data().Tasks[0]; got.Title != task.Title {
		t.Fatalf("title=%q", got.Title)
	}
}

func TestUpdateTaskShallowMerge(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	addTask(t, svc, "t1", 1)

	unit := "problems"
	total := 40.0
	if err := svc.UpdateTask(ctx, "t1", TaskPatch{Unit: &unit, TotalAmount: &total}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	got := svc.Data().Tasks[0]
	if got.Unit != "problems" || got.TotalAmount != 40 || got.Title != "Task t1" || !got.HasWeekDay(1) {
		t.Fatalf("merged task=%+v", got)
	}
}

func TestAddDailyMemoAppends(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := storage.DailyMemo{ID: "m1", Date: "2025-01-06", Content: "first"}
	second := storage.DailyMemo{ID: "m2", Date: "2025-01-06", Content: "second"}
	for _, m := range []storage.DailyMemo{first, second} {
		if err := svc.AddDailyMemo(ctx, m); err != nil {
			t.Fatalf("AddDailyMemo %s: %v", m.ID, err)
		}
	}

	if diff := cmp.Diff([]storage.DailyMemo{first, second}, svc.Data().DailyMemos); diff != "" {
		t.Fatalf("memos mismatch (-want +got):\n%s", diff)
	}
	got, ok := svc.DailyMemo("2025-01-06")
	if !ok || got.ID != "m1" {
		t.Fatalf("DailyMemo=%+v ok=%v, want m1", got, ok)
	}
}

func TestDailyMemoUpsertByDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.UpdateDailyMemo(ctx, "2025-01-06", "first"); err != nil {
		t.Fatalf("UpdateDailyMemo: %v", err)
	}
	if err := svc.UpdateDailyMemo(ctx, "2025-01-06", "second"); err != nil {
		t.Fatalf("UpdateDailyMemo: %v", err)
	}
	if err := svc.UpdateDailyMemo(ctx, "2025-01-07", "other day"); err != nil {
		t.Fatalf("UpdateDailyMemo: %v", err)
	}

	var same []storage.DailyMemo
	for _, m := range svc.Data().DailyMemos {
		if m.Date == "2025-01-06" {
			same = append(same, m)
		}
	}
	if len(same) != 1 || same[0].Content != "second" {
		t.Fatalf("memos for date=%+v, want one with content 'second'", same)
	}

	if err := svc.DeleteDailyMemo(ctx, same[0].ID); err != nil {
		t.Fatalf("DeleteDailyMemo: %v", err)
	}
	if _, ok := svc.DailyMemo("2025-01-06"); ok {
		t.Fatalf("memo should be deleted")
	}
	if got := svc.DailyMemos(); len(got) != 1 || got[0].Date != "2025-01-07" {
		t.Fatalf("DailyMemos=%+v", got)
	}
}

func TestToggleCompleteScenario(t *testing.T) {
	svc, path := newTestService(t)
	ctx := context.Background()
	addTask(t, svc, "t1", 1)

	r, err := svc.ToggleComplete(ctx, "t1", "2025-01-06")
	if err != nil {
		t.Fatalf("ToggleComplete #1: %v", err)
	}
	if !r.Completed || r.Duration != 0 || r.TaskID != "t1" || r.Date != "2025-01-06" {
		t.Fatalf("new record=%+v", r)
	}

	r2, err := svc.ToggleComplete(ctx, "t1", "2025-01-06")
	if err != nil {
		t.Fatalf("ToggleComplete #2: %v", err)
	}
	if r2.Completed || r2.ID != r.ID {
		t.Fatalf("toggled record=%+v, want same id %s not completed", r2, r.ID)
	}

	reloaded := openTestService(t, path)
	if n := len(reloaded.Data().Records); n != 1 {
		t.Fatalf("persisted records=%d, want 1", n)
	}
}

func TestFinishTimerAccumulates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	addTask(t, svc, "t1", 1)

	first, err := svc.FinishTimer(ctx, "t1", "2025-01-06", 10, "p.1-4", nil)
	if err != nil {
		t.Fatalf("FinishTimer #1: %v", err)
	}
	if first.Amount == nil || *first.Amount != 0 || !first.Completed {
		t.Fatalf("first=%+v", first)
	}

	amount := 8.0
	second, err := svc.FinishTimer(ctx, "t1", "2025-01-06", 15, "", &amount)
	if err != nil {
		t.Fatalf("FinishTimer #2: %v", err)
	}
	if second.ID != first.ID || second.Duration != 25 || second.Memo != "p.1-4" || *second.Amount != 8 {
		t.Fatalf("second=%+v", second)
	}
	if n := len(svc.Data().Records); n != 1 {
		t.Fatalf("records=%d, want 1", n)
	}
}

func TestPostponeAndTaskMemo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	addTask(t, svc, "t1", 1)

	r, err := svc.Postpone(ctx, "t1", "2025-01-06")
	if err != nil {
		t.Fatalf("Postpone: %v", err)
	}
	if !r.Postponed || r.Completed {
		t.Fatalf("postponed record=%+v", r)
	}
	if err := svc.UpdateTaskMemo(ctx, r.ID, "tired"); err != nil {
		t.Fatalf("UpdateTaskMemo: %v", err)
	}
	if err := svc.UpdateTaskMemo(ctx, "", "ignored"); err != nil {
		t.Fatalf("UpdateTaskMemo empty id: %v", err)
	}
	got, ok := svc.RecordFor("t1", "2025-01-06")
	if !ok || got.Memo != "tired" {
		t.Fatalf("RecordFor=%+v ok=%v", got, ok)
	}
}

func TestCheckSetupOrder(t *testing.T) {
	d := storage.DefaultAppData()
	if err := CheckSetup(d); err != (SetupError{Step: SetupStepTerms}) {
		t.Fatalf("err=%v, want terms", err)
	}
	d.Settings.AgreedToTerms = true
	if err := CheckSetup(d); err != (SetupError{Step: SetupStepOnboarding}) {
		t.Fatalf("err=%v, want onboarding", err)
	}
	d.Settings.OnboardingCompleted = true
	d.Settings.InitialSetupCompleted = true
	if err := CheckSetup(d); err != (SetupError{Step: SetupStepInitialSetup}) {
		t.Fatalf("err=%v, want initial setup without a child", err)
	}
	d.Child = &storage.Child{Name: "Hana"}
	if err := CheckSetup(d); err != nil {
		t.Fatalf("err=%v, want nil", err)
	}
}

func TestSetupStepsInOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AgreeToTerms(ctx); err != nil {
		t.Fatalf("AgreeToTerms: %v", err)
	}
	if err := svc.RequireSetup(); err != (SetupError{Step: SetupStepOnboarding}) {
		t.Fatalf("err=%v, want onboarding", err)
	}
	if err := svc.CompleteOnboarding(ctx); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	if err := svc.RequireSetup(); err != (SetupError{Step: SetupStepInitialSetup}) {
		t.Fatalf("err=%v, want initial setup", err)
	}
}

func TestCompleteSetupMirrorsGrade(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.RequireSetup(); err == nil {
		t.Fatalf("expected setup error on a fresh document")
	}
	setupChild(t, svc, "G3")
	if err := svc.RequireSetup(); err != nil {
		t.Fatalf("RequireSetup: %v", err)
	}
	d := svc.Data()
	if d.Settings.CurrentGrade != "G3" || d.Child.Grade != "G3" {
		t.Fatalf("grade=%q/%q", d.Settings.CurrentGrade, d.Child.Grade)
	}
}

func TestCompleteSetupGradeChangeArchivesBundle(t *testing.T) {
	svc, path := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "G1")
	addTask(t, svc, "t1", 1)
	if err := svc.SwitchGrade(ctx, "G2", "2026-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade G2: %v", err)
	}
	addTask(t, svc, "t2", 2)
	if err := svc.SwitchGrade(ctx, "G1", "2025-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade G1: %v", err)
	}

	// Re-running setup with another grade behaves like a switch.
	child := storage.Child{Name: "Hana", Grade: "G2", StartDate: "2026-04-01"}
	if err := svc.CompleteSetup(ctx, child, false, 1); err != nil {
		t.Fatalf("CompleteSetup: %v", err)
	}
	if got := bundleOf(svc.Data()).Tasks; len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("live tasks after setup=%+v, want [t2]", got)
	}
	if err := svc.SwitchGrade(ctx, "G1", "2025-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade G1: %v", err)
	}

	reopened := openTestService(t, path)
	for grade, want := range map[string]string{"G1": "t1", "G2": "t2"} {
		g, ok := reopened.GradeBundle(grade)
		if !ok {
			t.Fatalf("grade %s missing", grade)
		}
		if len(g.Tasks) != 1 || g.Tasks[0].ID != want {
			t.Fatalf("grade %s tasks=%+v, want [%s]", grade, g.Tasks, want)
		}
	}
}

func TestCompleteSetupSameGradeKeepsTasks(t *testing.T) {
	svc, _ := newTestService(t)
	setupChild(t, svc, "G1")
	addTask(t, svc, "t1", 1)

	child := storage.Child{Name: "Mio", Grade: "G1", StartDate: "2025-04-01"}
	if err := svc.CompleteSetup(context.Background(), child, true, 0); err != nil {
		t.Fatalf("CompleteSetup: %v", err)
	}
	d := svc.Data()
	if d.Child.Name != "Mio" || d.Settings.WeekStart != 0 || len(d.Tasks) != 1 {
		t.Fatalf("child=%+v weekStart=%d tasks=%d", d.Child, d.Settings.WeekStart, len(d.Tasks))
	}
	if _, archived := d.GradeDataMap["G1"]; archived {
		t.Fatalf("same-grade setup should not archive")
	}
}

func TestUpdateSettingsLeavesOtherFields(t *testing.T) {
	svc, _ := newTestService(t)
	setupChild(t, svc, "G1")
	on := true
	if err := svc.UpdateSettings(context.Background(), SettingsPatch{Notifications: &on}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	st := svc.Data().Settings
	if !st.Notifications || st.CurrentGrade != "G1" || st.WeekStart != 1 || !st.AgreedToTerms {
		t.Fatalf("settings=%+v", st)
	}
}

func TestResetDiscardsEverything(t *testing.T) {
	svc, path := newTestService(t)
	ctx := context.Background()
	setupChild(t, svc, "G1")
	addTask(t, svc, "t1", 1)
	if err := svc.SwitchGrade(ctx, "G2", "2026-04-01", 1); err != nil {
		t.Fatalf("SwitchGrade: %v", err)
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if diff := cmp.Diff(storage.DefaultAppData(), svc.Data(), equateEmpty); diff != "" {
		t.Fatalf("after reset (-want +got):\n%s", diff)
	}
	reloaded := openTestService(t, path)
	if diff := cmp.Diff(storage.DefaultAppData(), reloaded.Data(), equateEmpty); diff != "" {
		t.Fatalf("reloaded after reset (-want +got):\n%s", diff)
	}
}

func TestRestoreSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	addTask(t, svc, "t1", 1)
	addTask(t, svc, "t2", 2)

	snaps, err := svc.Snapshots(ctx, 0)
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("snapshots=%d, want 2", len(snaps))
	}

	ok, err := svc.RestoreSnapshot(ctx, snaps[1].ID)
	if err != nil || !ok {
		t.Fatalf("RestoreSnapshot ok=%v err=%v", ok, err)
	}
	if got := svc.Data().Tasks; len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("tasks after restore=%+v", got)
	}

	ok, err = svc.RestoreSnapshot(ctx, 424242)
	if err != nil || ok {
		t.Fatalf("missing snapshot ok=%v err=%v", ok, err)
	}
}
