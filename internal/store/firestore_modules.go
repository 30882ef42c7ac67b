package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

// FirestoreModules stores ordered-list module preferences, one document per module.
type FirestoreModules struct {
	client *firestore.Client
}

func NewFirestoreModules(client *firestore.Client) *FirestoreModules {
	return &FirestoreModules{client: client}
}

func (s *FirestoreModules) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("dashboard_modules")
}

func (s *FirestoreModules) ListModules(ctx context.Context, uid string) ([]models.ModulePreference, error) {
	docs, err := s.collection(uid).OrderBy("position", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list modules", err)
	}
	prefs := make([]models.ModulePreference, 0, len(docs))
	for _, d := range docs {
		var p models.ModulePreference
		if err := d.DataTo(&p); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse module data", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, nil
}

func (s *FirestoreModules) SaveModules(ctx context.Context, uid string, prefs []models.ModulePreference) error {
	batch := s.client.BulkWriter(ctx)
	coll := s.collection(uid)
	now := time.Now()

	jobs := make([]bulkModuleJob, 0, len(prefs))
	for _, p := range prefs {
		p.UpdatedAt = now
		j, err := batch.Set(coll.Doc(p.ModuleID), p)
		if err != nil {
			return errs.NewDatabaseError("update", "failed to schedule module update", err)
		}
		jobs = append(jobs, bulkModuleJob{moduleID: p.ModuleID, job: j})
	}
	batch.End()
	return awaitJobs(ctx, jobs)
}

type bulkModuleJob struct {
	moduleID string
	job      *firestore.BulkWriterJob
}

func (s *FirestoreModules) BulkUpdatePositions(ctx context.Context, uid string, positions map[string]int) error {
	bw := s.client.BulkWriter(ctx)
	coll := s.collection(uid)
	now := time.Now()

	jobs := make([]bulkModuleJob, 0, len(positions))
	for moduleID, pos := range positions {
		j, err := bw.Update(coll.Doc(moduleID), []firestore.Update{
			{Path: "position", Value: pos},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			return errs.NewDatabaseError("update", "failed to schedule position update", err)
		}
		jobs = append(jobs, bulkModuleJob{moduleID: moduleID, job: j})
	}
	bw.End()
	return awaitJobs(ctx, jobs)
}

func awaitJobs(ctx context.Context, jobs []bulkModuleJob) error {
	log := logger.FromContext(ctx)
	for _, entry := range jobs {
		if _, err := entry.job.Results(); err != nil {
			log.Error("failed to write module preference", "module_id", entry.moduleID, "error", err)
			return errs.NewDatabaseError("update", "failed to write module preference", err)
		}
	}
	return nil
}
