// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureExperiments(ctx, db); err != nil {
		problems = append(problems, "experiments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	for _, name := range names {
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One account per email.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Approvals page reads unapproved accounts oldest-first.
		{
			Keys:    bson.D{{Key: "approved", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_users_approved_created"),
		},
	})
}

func ensureExperiments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("experiments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Ownership checks and per-user listings.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_experiments_user"),
		},
		// Join path from experiments to beans.
		{
			Keys:    bson.D{{Key: "bean_id", Value: 1}},
			Options: options.Index().SetName("idx_experiments_bean"),
		},
	})
}
