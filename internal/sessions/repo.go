package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vitafit/backend/internal/telemetry/tracing"
)

var ErrSessionNotFound = errors.New("session not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// UpsertStage1 stores the stage 1 snapshot, replacing the whole record on
// resubmission. A previously stored diet plan is cleared so stale stage 2
// data can never survive fresh measurements.
func (r *Repo) UpsertStage1(ctx context.Context, record Record) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessionsRepo.UpsertStage1")
	span.SetAttributes(attribute.String("session.id", record.SessionID))
	defer span.End()

	rawInputJSON, err := json.Marshal(record.RawInput)
	if err != nil {
		return fmt.Errorf("marshal raw input: %w", err)
	}
	featuresJSON, err := json.Marshal(record.NormalizedFeatures)
	if err != nil {
		return fmt.Errorf("marshal normalized features: %w", err)
	}
	exercisePlanJSON, err := json.Marshal(record.ExercisePlan)
	if err != nil {
		return fmt.Errorf("marshal exercise plan: %w", err)
	}

	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO prediction_session
				(session_id, raw_input, normalized_features, exercise_plan, diet_plan, last_updated)
			VALUES ($1, $2, $3, $4, NULL, $5)
			ON CONFLICT (session_id) DO UPDATE SET
				raw_input = EXCLUDED.raw_input,
				normalized_features = EXCLUDED.normalized_features,
				exercise_plan = EXCLUDED.exercise_plan,
				diet_plan = NULL,
				last_updated = EXCLUDED.last_updated;
		`,
		record.SessionID, rawInputJSON, featuresJSON, exercisePlanJSON, record.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", record.SessionID, err)
	}
	return nil
}

// UpsertStage2 merges the diet plan into an existing record. The stage 1
// fields are left untouched.
func (r *Repo) UpsertStage2(ctx context.Context, sessionID string, dietPlan DietPlan) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessionsRepo.UpsertStage2")
	span.SetAttributes(attribute.String("session.id", sessionID))
	defer span.End()

	dietPlanJSON, err := json.Marshal(dietPlan)
	if err != nil {
		return fmt.Errorf("marshal diet plan: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE prediction_session SET diet_plan = $2, last_updated = $3 WHERE session_id = $1`,
		sessionID, dietPlanJSON, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, sessionID string) (*Record, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessionsRepo.Get")
	span.SetAttributes(attribute.String("session.id", sessionID))
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT raw_input, normalized_features, exercise_plan, diet_plan, last_updated
			FROM prediction_session
			WHERE session_id = $1;
		`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		// pgx surfaces query execution errors on Next, a false here
		// means either no row or a failed query
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query session %s: %w", sessionID, err)
		}
		return nil, ErrSessionNotFound
	}

	var (
		rawInputJSON     []byte
		featuresJSON     []byte
		exercisePlanJSON []byte
		dietPlanJSON     []byte
		lastUpdated      time.Time
	)
	if err := rows.Scan(
		&rawInputJSON, &featuresJSON, &exercisePlanJSON, &dietPlanJSON, &lastUpdated,
	); err != nil {
		return nil, err
	}

	record := &Record{
		SessionID:   sessionID,
		LastUpdated: lastUpdated,
	}
	if err := json.Unmarshal(rawInputJSON, &record.RawInput); err != nil {
		return nil, fmt.Errorf("unmarshal raw input: %w", err)
	}
	if err := json.Unmarshal(featuresJSON, &record.NormalizedFeatures); err != nil {
		return nil, fmt.Errorf("unmarshal normalized features: %w", err)
	}
	if err := json.Unmarshal(exercisePlanJSON, &record.ExercisePlan); err != nil {
		return nil, fmt.Errorf("unmarshal exercise plan: %w", err)
	}
	if dietPlanJSON != nil {
		record.DietPlan = &DietPlan{}
		if err := json.Unmarshal(dietPlanJSON, record.DietPlan); err != nil {
			return nil, fmt.Errorf("unmarshal diet plan: %w", err)
		}
	}

	return record, nil
}
