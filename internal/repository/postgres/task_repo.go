package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/keiri-hq/keiri-backend/internal/domain"
)

// maxInsertRows caps the rows of one INSERT statement, keeping its parameters under the 65535 limit
const maxInsertRows = 1000

// taskInsertColumns is the number of bound parameters per inserted row
const taskInsertColumns = 10

const taskColumns = `id, company_id, category, title, due_date, status, source,
	template_key, template_version, archived_at, meta, created_at`

// TaskRepository implements domain.TaskRepository using PostgreSQL
type TaskRepository struct {
	db DBTX
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateManySkipDuplicates inserts tasks with ON CONFLICT DO NOTHING on (company_id, title, due_date)
func (r *TaskRepository) CreateManySkipDuplicates(ctx context.Context, tasks []*domain.Task) (int64, error) {
	var inserted int64
	for start := 0; start < len(tasks); start += maxInsertRows {
		end := start + maxInsertRows
		if end > len(tasks) {
			end = len(tasks)
		}

		sql, args, err := buildTaskInsert(tasks[start:end])
		if err != nil {
			return inserted, err
		}

		tag, err := r.db.Exec(ctx, sql, args...)
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

func buildTaskInsert(tasks []*domain.Task) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO tasks (id, company_id, category, title, due_date, status, source, template_key, template_version, meta) VALUES `)

	args := make([]any, 0, len(tasks)*taskInsertColumns)
	for i, t := range tasks {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 0; c < taskInsertColumns; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*taskInsertColumns+c+1)
		}
		sb.WriteString(")")

		meta, err := encodeMeta(t.Meta)
		if err != nil {
			return "", nil, err
		}

		id := t.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		args = append(args,
			id,
			t.CompanyID,
			string(t.Category),
			t.Title,
			pgtype.Date{Time: t.DueDate, Valid: true},
			string(t.Status),
			string(t.Source),
			toPgText(t.TemplateKey),
			toPgInt4(t.TemplateVersion),
			meta,
		)
	}
	sb.WriteString(` ON CONFLICT (company_id, title, due_date) DO NOTHING`)

	return sb.String(), args, nil
}

func encodeMeta(meta map[string]any) ([]byte, error) {
	if meta == nil {
		return nil, nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode task meta: %w", err)
	}
	return b, nil
}

// ListOpenByCompany returns non-done, non-archived tasks ordered by due date then creation time
func (r *TaskRepository) ListOpenByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE company_id = $1 AND status <> 'done' AND archived_at IS NULL
		ORDER BY due_date ASC, created_at ASC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// CountOpenDueBefore counts non-done tasks due strictly before the given date
func (r *TaskRepository) CountOpenDueBefore(ctx context.Context, companyID uuid.UUID, before time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE company_id = $1 AND status <> 'done' AND due_date < $2`,
		companyID, pgtype.Date{Time: before, Valid: true},
	).Scan(&count)
	return count, err
}

// ListOpenDueBetween returns up to limit non-done tasks due in [from, to], soonest first
func (r *TaskRepository) ListOpenDueBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE company_id = $1 AND status <> 'done' AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date ASC
		LIMIT $4`,
		companyID, pgtype.Date{Time: from, Valid: true}, pgtype.Date{Time: to, Valid: true}, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// CountOpenDueBetween counts non-done tasks due in [from, to]
func (r *TaskRepository) CountOpenDueBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE company_id = $1 AND status <> 'done' AND due_date >= $2 AND due_date <= $3`,
		companyID, pgtype.Date{Time: from, Valid: true}, pgtype.Date{Time: to, Valid: true},
	).Scan(&count)
	return count, err
}

func collectTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var (
			t           domain.Task
			category    string
			status      string
			source      string
			dueDate     pgtype.Date
			templateKey pgtype.Text
			version     pgtype.Int4
			archivedAt  pgtype.Timestamptz
			meta        []byte
		)
		err := rows.Scan(
			&t.ID, &t.CompanyID, &category, &t.Title, &dueDate, &status, &source,
			&templateKey, &version, &archivedAt, &meta, &t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		t.Category = domain.TaskCategory(category)
		t.Status = domain.TaskStatus(status)
		t.Source = domain.TaskSource(source)
		t.DueDate = dueDate.Time.UTC()
		t.TemplateKey = fromPgText(templateKey)
		if version.Valid {
			t.TemplateVersion = &version.Int32
		}
		if archivedAt.Valid {
			t.ArchivedAt = &archivedAt.Time
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &t.Meta); err != nil {
				return nil, fmt.Errorf("decode task meta: %w", err)
			}
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}
