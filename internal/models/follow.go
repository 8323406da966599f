package models

// Follow is a directed edge: FollowerID follows FollowedID. The composite primary key keeps
// at most one edge per ordered pair.
type Follow struct {
	FollowerID uint `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FollowedID uint `json:"followed_id" gorm:"primaryKey;autoIncrement:false;index"`
	Follower   User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followed   User `json:"-" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
}
