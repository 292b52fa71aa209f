package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PollutionReport is an immutable record of one user submission.
// Coordinates are kept as submitted (strings) so the record round-trips
// exactly between storage backends.
type PollutionReport struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Filename      string             `bson:"filename" json:"filename"`
	Latitude      string             `bson:"latitude" json:"latitude"`
	Longitude     string             `bson:"longitude" json:"longitude"`
	LocationName  string             `bson:"location_name" json:"location_name"`
	Score         int                `bson:"score" json:"score"`
	Analysis      string             `bson:"analysis" json:"analysis"`
	ReporterName  string             `bson:"reporter_name" json:"reporter_name"`
	ReporterEmail string             `bson:"reporter_email" json:"reporter_email"`
	Points        int                `bson:"points" json:"points"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}
