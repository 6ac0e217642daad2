package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medicore/clinic-scheduling/internal/db"
	"github.com/medicore/clinic-scheduling/internal/scheduling"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	doctorIDs, err := seedDoctors(context.Background(), pool, 25)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	patientIDs, err := seedPatients(context.Background(), pool, 500)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, doctorIDs, patientIDs, 300); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func weekdayTemplate() scheduling.WeeklyAvailability {
	morning := scheduling.TimeRange{Start: 9 * 60, End: 12 * 60}
	fullDay := scheduling.TimeRange{Start: 9 * 60, End: 17 * 60}

	avail := scheduling.WeeklyAvailability{
		Monday:    &fullDay,
		Tuesday:   &fullDay,
		Wednesday: &fullDay,
		Thursday:  &fullDay,
		Friday:    &fullDay,
	}
	if gofakeit.Bool() {
		avail.Saturday = &morning
	}
	return avail
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d doctors", count)

	specialties := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		availability, err := json.Marshal(weekdayTemplate())
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO doctors (id, first_name, last_name, email, phone, specialty, availability, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		`, id, gofakeit.FirstName(), gofakeit.LastName(), gofakeit.Email(), gofakeit.Phone(),
			specialties[gofakeit.Number(0, len(specialties)-1)], availability)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("doctors seeded")
	return ids, nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		email := gofakeit.Email()

		_, err := tx.Exec(ctx, `
			INSERT INTO patients (id, name, email, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
		`, id, gofakeit.Name(), email)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("patients seeded")
	return ids, nil
}

// seedAppointments books non-overlapping half-hour visits over the coming
// week, one doctor-day slot at a time so the no-overlap invariant holds in
// the seed data too.
func seedAppointments(ctx context.Context, pool *pgxpool.Pool, doctorIDs, patientIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d appointments", count)

	types := []scheduling.AppointmentType{
		scheduling.TypeConsultation,
		scheduling.TypeFollowUp,
		scheduling.TypeCheckup,
		scheduling.TypeEmergency,
	}
	reasons := []string{
		"Annual checkup",
		"Persistent headache",
		"Back pain",
		"Blood pressure follow-up",
		"Skin rash",
		"Vaccination",
	}

	now := time.Now().UTC()
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	taken := make(map[string]bool)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for attempts := 0; inserted < count && attempts < count*10; attempts++ {
		doctorID := doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)]
		day := weekStart.AddDate(0, 0, gofakeit.Number(0, 4))
		// 9:00-16:30 in half-hour steps
		slot := gofakeit.Number(0, 15)
		start := day.Add(9*time.Hour + time.Duration(slot)*30*time.Minute)

		key := doctorID.String() + start.Format(time.RFC3339)
		if taken[key] {
			continue
		}
		taken[key] = true

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, doctor_id, patient_id, start_time, duration_minutes, status, appt_type, reason, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 30, 'SCHEDULED', $5, $6, now(), now())
		`, uuid.New(), doctorID, patientIDs[gofakeit.Number(0, len(patientIDs)-1)], start,
			types[gofakeit.Number(0, len(types)-1)], reasons[gofakeit.Number(0, len(reasons)-1)])
		if err != nil {
			return err
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Printf("appointments seeded: %d", inserted)
	return nil
}
