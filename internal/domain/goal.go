package domain

// WorkoutGoal is a weekly training frequency target.
type WorkoutGoal struct {
	ID           string `bson:"_id" json:"id"`
	Frequency    int    `bson:"frequency" json:"frequency"` // workouts per week
	StartDate    string `bson:"startDate" json:"startDate"`
	EndDate      string `bson:"endDate,omitempty" json:"endDate,omitempty"`
	IsActive     bool   `bson:"isActive" json:"isActive"`
	TargetStreak int    `bson:"targetStreak,omitempty" json:"targetStreak,omitempty"`
}
