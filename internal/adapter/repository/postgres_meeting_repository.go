package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// meetingRow is the meetings table layout. List columns hold JSON; a JSON
// null keeps "never set" apart from an empty list.
type meetingRow struct {
	MeetingID        string                                `gorm:"column:meeting_id;primaryKey"`
	CreatedAt        time.Time                             `gorm:"column:created_at;autoCreateTime:false"`
	Transcript       *string                               `gorm:"column:transcript"`
	Segments         datatypes.JSONType[[]entities.Segment] `gorm:"column:segments"`
	Language         *string                               `gorm:"column:language"`
	Summary          *string                               `gorm:"column:summary"`
	KeyDecisions     datatypes.JSONType[[]string]          `gorm:"column:key_decisions"`
	ActionItems      datatypes.JSONType[[]string]          `gorm:"column:action_items"`
	SummaryTimestamp *time.Time                            `gorm:"column:summary_timestamp"`
	UpdatedAt        time.Time                             `gorm:"column:updated_at;autoUpdateTime"`
}

func (meetingRow) TableName() string {
	return "meetings"
}

func newMeetingRow(rec *entities.MeetingRecord) *meetingRow {
	return &meetingRow{
		MeetingID:        rec.MeetingID,
		CreatedAt:        rec.CreatedAt.UTC(),
		Transcript:       rec.Transcript,
		Segments:         datatypes.NewJSONType(rec.Segments),
		Language:         rec.Language,
		Summary:          rec.Summary,
		KeyDecisions:     datatypes.NewJSONType(rec.KeyDecisions),
		ActionItems:      datatypes.NewJSONType(rec.ActionItems),
		SummaryTimestamp: rec.SummaryTimestamp,
	}
}

func (row *meetingRow) toRecord() *entities.MeetingRecord {
	rec := &entities.MeetingRecord{
		MeetingID:        row.MeetingID,
		CreatedAt:        row.CreatedAt.UTC(),
		Transcript:       row.Transcript,
		Segments:         row.Segments.Data(),
		Language:         row.Language,
		Summary:          row.Summary,
		KeyDecisions:     row.KeyDecisions.Data(),
		ActionItems:      row.ActionItems.Data(),
		SummaryTimestamp: row.SummaryTimestamp,
	}
	if rec.SummaryTimestamp != nil {
		t := rec.SummaryTimestamp.UTC()
		rec.SummaryTimestamp = &t
	}
	return rec
}

// PostgresMeetingRepository stores meetings in PostgreSQL. A merge runs in
// one transaction holding the row lock, so concurrent merges to the same
// meeting are serialized by the database.
type PostgresMeetingRepository struct {
	db *gorm.DB
}

// NewPostgresMeetingRepository creates a new meeting repository
func NewPostgresMeetingRepository(db *gorm.DB) *PostgresMeetingRepository {
	return &PostgresMeetingRepository{db: db}
}

// Put inserts the row if absent, locks it and writes the merged record
func (r *PostgresMeetingRepository) Put(ctx context.Context, meetingID string, patch entities.MeetingPatch) (*entities.MeetingRecord, error) {
	if err := validateKey(meetingID); err != nil {
		return nil, err
	}

	var merged *entities.MeetingRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := entities.NewMeetingRecord(meetingID)
		if patch.CreatedAt != nil {
			seed.CreatedAt = patch.CreatedAt.UTC()
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(newMeetingRow(seed)).Error; err != nil {
			return err
		}

		var row meetingRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("meeting_id = ?", meetingID).
			First(&row).Error; err != nil {
			return err
		}

		rec, err := mergeRecord(row.toRecord(), meetingID, patch)
		if err != nil {
			return err
		}

		if err := tx.Save(newMeetingRow(rec)).Error; err != nil {
			return err
		}
		merged = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// Get retrieves a meeting by id
func (r *PostgresMeetingRepository) Get(ctx context.Context, meetingID string) (*entities.MeetingRecord, error) {
	var row meetingRow
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.toRecord(), nil
}

// List returns meetings ordered by creation time
func (r *PostgresMeetingRepository) List(ctx context.Context) ([]*entities.MeetingRecord, error) {
	var rows []meetingRow
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("meeting_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*entities.MeetingRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toRecord())
	}
	return records, nil
}
