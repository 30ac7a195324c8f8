package models

import "time"

// Модели не используют gorm.Model: DeletedAt включил бы мягкое удаление,
// а подписка при отписке должна удаляться физически.

type User struct {
	ID        uint      `gorm:"primary_key"`
	Username  string    `gorm:"type:varchar(150);unique_index;not null"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time
	Posts     []Post    `gorm:"foreignkey:AuthorID"`
	Comments  []Comment `gorm:"foreignkey:AuthorID"`
}

type Group struct {
	ID          uint   `gorm:"primary_key"`
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(100);unique_index;not null"`
	Description string `gorm:"type:text"`
	Posts       []Post `gorm:"foreignkey:GroupID"`
}

// TableName: "groups" — ключевое слово в SQLite начиная с 3.28
func (Group) TableName() string {
	return "post_groups"
}

type Post struct {
	ID        uint      `gorm:"primary_key"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
	Image     string
	AuthorID  uint      `gorm:"not null;index"`
	Author    User      `gorm:"foreignkey:AuthorID"`
	GroupID   *uint     `gorm:"index"`
	Group     *Group    `gorm:"foreignkey:GroupID"`
	Comments  []Comment `gorm:"foreignkey:PostID"`
}

type Comment struct {
	ID        uint      `gorm:"primary_key"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
	PostID    uint      `gorm:"not null;index"`
	AuthorID  uint      `gorm:"not null;index"`
	Author    User      `gorm:"foreignkey:AuthorID"`
}

// Follow - направленное ребро подписки: UserID подписан на AuthorID
type Follow struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"not null;unique_index:idx_follow_user_author"`
	AuthorID  uint `gorm:"not null;unique_index:idx_follow_user_author;index"`
	CreatedAt time.Time
}

// All перечисляет модели для миграции
func All() []interface{} {
	return []interface{}{&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}}
}
