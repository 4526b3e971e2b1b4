package services

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/terraincognita07/kira/internal/insights"
	"github.com/terraincognita07/kira/internal/models"
)

type dailyRecordRepositoryStub struct {
	records   map[string]models.DailyRecord
	nextID    uint
	findErr   error
	saveErr   error
	deleteErr error
	inserts   int
	updates   int
}

func newDailyRecordRepositoryStub() *dailyRecordRepositoryStub {
	return &dailyRecordRepositoryStub{
		records: make(map[string]models.DailyRecord),
		nextID:  1,
	}
}

func (stub *dailyRecordRepositoryStub) key(userID uint, date string) string {
	return fmt.Sprintf("%d:%s", userID, date)
}

func (stub *dailyRecordRepositoryStub) ListByUser(userID uint) ([]models.DailyRecord, error) {
	return stub.ListByUserRange(userID, "", "")
}

func (stub *dailyRecordRepositoryStub) ListByUserRange(userID uint, fromDate string, toDate string) ([]models.DailyRecord, error) {
	if stub.findErr != nil {
		return nil, stub.findErr
	}
	records := make([]models.DailyRecord, 0)
	for _, record := range stub.records {
		if record.UserID != userID {
			continue
		}
		if fromDate != "" && record.Date < fromDate {
			continue
		}
		if toDate != "" && record.Date >= toDate {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records, nil
}

func (stub *dailyRecordRepositoryStub) FindByUserAndDate(userID uint, date string) (models.DailyRecord, bool, error) {
	if stub.findErr != nil {
		return models.DailyRecord{}, false, stub.findErr
	}
	record, ok := stub.records[stub.key(userID, date)]
	return record, ok, nil
}

func (stub *dailyRecordRepositoryStub) Create(record *models.DailyRecord) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	record.ID = stub.nextID
	stub.nextID++
	stub.records[stub.key(record.UserID, record.Date)] = *record
	return nil
}

func (stub *dailyRecordRepositoryStub) Upsert(record *models.DailyRecord) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	key := stub.key(record.UserID, record.Date)
	if existing, ok := stub.records[key]; ok {
		record.ID = existing.ID
		stub.updates++
	} else {
		record.ID = stub.nextID
		stub.nextID++
		stub.inserts++
	}
	stub.records[key] = *record
	return nil
}

func (stub *dailyRecordRepositoryStub) DeleteByUserAndDate(userID uint, date string) error {
	if stub.deleteErr != nil {
		return stub.deleteErr
	}
	delete(stub.records, stub.key(userID, date))
	return nil
}

func floatPtr(value float64) *float64 {
	return &value
}

func TestUpsertDailyRecordCreatesThenOverwritesEveryField(t *testing.T) {
	repo := newDailyRecordRepositoryStub()
	service := NewDayService(repo)

	created, err := service.UpsertDailyRecord(1, "2026-03-02", DailyRecordInput{
		Flow:     models.FlowHeavy,
		Mood:     models.MoodLow,
		Energy:   models.EnergyLow,
		Sleep:    floatPtr(6),
		Symptoms: []string{"cramps"},
		Notes:    "rough day",
	})
	if err != nil {
		t.Fatalf("create upsert: %v", err)
	}
	if !created.IsPeriod {
		t.Fatalf("expected heavy flow to mark a period day")
	}
	if repo.inserts != 1 || repo.updates != 0 {
		t.Fatalf("expected one insert, got inserts=%d updates=%d", repo.inserts, repo.updates)
	}

	updated, err := service.UpsertDailyRecord(1, "2026-03-02", DailyRecordInput{Mood: models.MoodGood})
	if err != nil {
		t.Fatalf("overwrite upsert: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected same record id %d, got %d", created.ID, updated.ID)
	}
	if repo.updates != 1 {
		t.Fatalf("expected one update, got %d", repo.updates)
	}

	stored, err := service.GetDailyRecord(1, "2026-03-02")
	if err != nil || stored == nil {
		t.Fatalf("expected stored record, got %#v err=%v", stored, err)
	}
	if stored.Flow != "" || stored.Energy != "" || stored.Sleep != nil || len(stored.Symptoms) != 0 || stored.Notes != "" {
		t.Fatalf("expected omitted fields to be cleared, got %#v", stored)
	}
	if stored.Mood != models.MoodGood {
		t.Fatalf("expected mood good, got %q", stored.Mood)
	}
	if stored.IsPeriod {
		t.Fatalf("expected isPeriod recomputed to false")
	}
}

func TestUpsertDailyRecordNoneFlowIsNotPeriod(t *testing.T) {
	service := NewDayService(newDailyRecordRepositoryStub())

	record, err := service.UpsertDailyRecord(1, "2026-03-02", DailyRecordInput{Flow: models.FlowNone})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if record.IsPeriod {
		t.Fatalf("expected flow none to be a non-period day")
	}
}

func TestUpsertDailyRecordCopiesSleep(t *testing.T) {
	service := NewDayService(newDailyRecordRepositoryStub())
	sleep := 7.5

	record, err := service.UpsertDailyRecord(1, "2026-03-02", DailyRecordInput{Sleep: &sleep})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	sleep = 1
	if record.Sleep == nil || *record.Sleep != 7.5 {
		t.Fatalf("expected sleep copied as 7.5, got %v", record.Sleep)
	}
}

func TestGetDailyRecordMissingReturnsNil(t *testing.T) {
	service := NewDayService(newDailyRecordRepositoryStub())

	record, err := service.GetDailyRecord(1, "2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %#v", record)
	}
}

func TestDeleteDailyRecordIsIdempotentAndScoped(t *testing.T) {
	repo := newDailyRecordRepositoryStub()
	service := NewDayService(repo)
	if _, err := service.UpsertDailyRecord(1, "2026-03-02", DailyRecordInput{Mood: models.MoodGreat}); err != nil {
		t.Fatalf("seed user 1: %v", err)
	}
	if _, err := service.UpsertDailyRecord(2, "2026-03-02", DailyRecordInput{Mood: models.MoodLow}); err != nil {
		t.Fatalf("seed user 2: %v", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		if err := service.DeleteDailyRecord(1, "2026-03-02"); err != nil {
			t.Fatalf("delete attempt %d: %v", attempt, err)
		}
	}

	records, err := service.ListDailyRecords(1)
	if err != nil {
		t.Fatalf("list user 1: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected user 1 records removed, got %d", len(records))
	}
	records, err = service.ListDailyRecords(2)
	if err != nil {
		t.Fatalf("list user 2: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected user 2 record kept, got %d", len(records))
	}
}

func TestListDailyRecordsInWindowIsHalfOpen(t *testing.T) {
	service := NewDayService(newDailyRecordRepositoryStub())
	for _, date := range []string{"2026-02-28", "2026-03-01", "2026-03-30", "2026-03-31"} {
		if _, err := service.UpsertDailyRecord(1, date, DailyRecordInput{Mood: models.MoodOkay}); err != nil {
			t.Fatalf("seed %s: %v", date, err)
		}
	}

	anchor, _ := insights.ParseDate("2026-03-01")
	records, err := service.ListDailyRecordsInWindow(1, insights.WindowFrom(insights.Range30Days, anchor))
	if err != nil {
		t.Fatalf("list window: %v", err)
	}
	if len(records) != 2 || records[0].Date != "2026-03-01" || records[1].Date != "2026-03-30" {
		t.Fatalf("unexpected window records: %#v", records)
	}
}

func TestDayServiceWrapsRepositoryErrors(t *testing.T) {
	repo := newDailyRecordRepositoryStub()
	service := NewDayService(repo)
	cause := errors.New("disk full")

	repo.saveErr = cause
	if _, err := service.UpsertDailyRecord(1, "2026-03-02", DailyRecordInput{}); !errors.Is(err, ErrDailyRecordSaveFailed) || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}

	repo.deleteErr = cause
	if err := service.DeleteDailyRecord(1, "2026-03-02"); !errors.Is(err, ErrDailyRecordDeleteFailed) {
		t.Fatalf("expected ErrDailyRecordDeleteFailed, got %v", err)
	}

	repo.findErr = cause
	if _, err := service.GetDailyRecord(1, "2026-03-02"); !errors.Is(err, ErrDailyRecordLoadFailed) {
		t.Fatalf("expected ErrDailyRecordLoadFailed from get, got %v", err)
	}
	if _, err := service.ListDailyRecords(1); !errors.Is(err, ErrDailyRecordLoadFailed) {
		t.Fatalf("expected ErrDailyRecordLoadFailed from list, got %v", err)
	}
	repo.saveErr = nil
	if _, err := service.UpsertDailyRecord(1, "2026-03-02", DailyRecordInput{}); !errors.Is(err, ErrDailyRecordLoadFailed) {
		t.Fatalf("expected ErrDailyRecordLoadFailed from upsert, got %v", err)
	}
}
