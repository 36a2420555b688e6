package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	CourseID    primitive.ObjectID `bson:"course_id" json:"courseId"`
	Method      string             `bson:"method" json:"method"`
	Amount      float64            `bson:"amount" json:"amount"`
	OperationID string             `bson:"operation_id" json:"operationId"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
