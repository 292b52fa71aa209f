package store

import (
	"context"

	"coastsync-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists each record collection in its own MongoDB collection
type MongoStore struct {
	reports  *mongo.Collection
	cleanups *mongo.Collection
	teams    *mongo.Collection
	rewards  *mongo.Collection
	badges   *mongo.Collection
}

// NewMongoStore wires a store onto the given database
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		reports:  db.Collection("reports"),
		cleanups: db.Collection("cleanups"),
		teams:    db.Collection("teams"),
		rewards:  db.Collection("rewards"),
		badges:   db.Collection("badges"),
	}
}

func (s *MongoStore) InsertReport(ctx context.Context, report models.PollutionReport) error {
	_, err := s.reports.InsertOne(ctx, report)
	return err
}

func (s *MongoStore) ReportsByReporter(ctx context.Context, email string) ([]models.PollutionReport, error) {
	cursor, err := s.reports.Find(ctx, bson.M{"reporter_email": email},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.PollutionReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *MongoStore) RecentReports(ctx context.Context, limit int) ([]models.PollutionReport, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.reports.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.PollutionReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *MongoStore) GetTask(ctx context.Context, taskID string) (*models.CleanupTask, error) {
	var task models.CleanupTask
	err := s.cleanups.FindOne(ctx, bson.M{"task_id": taskID}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *MongoStore) ListTasks(ctx context.Context) ([]models.CleanupTask, error) {
	cursor, err := s.cleanups.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.CleanupTask
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *MongoStore) InsertTask(ctx context.Context, task models.CleanupTask) error {
	_, err := s.cleanups.InsertOne(ctx, task)
	return err
}

func (s *MongoStore) UpdateTask(ctx context.Context, task models.CleanupTask) error {
	result, err := s.cleanups.ReplaceOne(ctx, bson.M{"task_id": task.TaskID}, task)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetTeam(ctx context.Context, teamID string) (*models.CleanupTeam, error) {
	var team models.CleanupTeam
	err := s.teams.FindOne(ctx, bson.M{"team_id": teamID}).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *MongoStore) ListTeams(ctx context.Context) ([]models.CleanupTeam, error) {
	cursor, err := s.teams.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []models.CleanupTeam
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *MongoStore) InsertTeam(ctx context.Context, team models.CleanupTeam) error {
	_, err := s.teams.InsertOne(ctx, team)
	return err
}

func (s *MongoStore) UpdateTeam(ctx context.Context, team models.CleanupTeam) error {
	result, err := s.teams.ReplaceOne(ctx, bson.M{"team_id": team.TeamID}, team)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetUserRewards(ctx context.Context, email string) (*models.UserRewards, error) {
	var rewards models.UserRewards
	err := s.rewards.FindOne(ctx, bson.M{"email": email}).Decode(&rewards)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rewards, nil
}

func (s *MongoStore) UpsertUserRewards(ctx context.Context, rewards models.UserRewards) error {
	_, err := s.rewards.ReplaceOne(ctx, bson.M{"email": rewards.Email}, rewards,
		options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) ListBadges(ctx context.Context) ([]models.Badge, error) {
	cursor, err := s.badges.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var badges []models.Badge
	if err := cursor.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

func (s *MongoStore) SaveBadges(ctx context.Context, badges []models.Badge) error {
	for _, badge := range badges {
		_, err := s.badges.ReplaceOne(ctx, bson.M{"badge_id": badge.BadgeID}, badge,
			options.Replace().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}
