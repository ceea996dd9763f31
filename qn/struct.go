package qn

// GeneralFields are database fields shared by all models.
type GeneralFields struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt int64 `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

// DBStruct is the model constraint for ORM.
type DBStruct interface {
	User | Group | UserGroupLink | Token | UserTokenPermission |
		GroupTokenPermission | Post | PostToken | Tag | PostTag |
		Event | Setting
}

type User struct {
	GeneralFields
	Username  string `gorm:"uniqueIndex;type:varchar(32);not null" json:"username"`
	Password  string `gorm:"type:char(32);not null" json:"-"`
	LastLogin int64  `json:"last_login"`
	LastIP    string `gorm:"type:varchar(64)" json:"last_ip"`
}

type Group struct {
	GeneralFields
	Name string `gorm:"uniqueIndex;type:varchar(32);not null" json:"name"`
	Note string `gorm:"type:varchar(256)" json:"note"`
}

type UserGroupLink struct {
	GeneralFields
	UID int64 `gorm:"column:uid;index;not null" json:"uid"`
	GID int64 `gorm:"column:gid;index;not null" json:"gid"`

	User  *User  `gorm:"foreignKey:UID" json:"user,omitempty"`
	Group *Group `gorm:"foreignKey:GID" json:"group,omitempty"`
}

func (UserGroupLink) TableName() string {
	return "users_groups"
}

// Token is a named permission. Name is stored normalized, see NormalizeToken.
type Token struct {
	GeneralFields
	Name        string `gorm:"uniqueIndex;type:varchar(64);not null" json:"name"`
	Description string `gorm:"type:varchar(256)" json:"description"`
}

// UserTokenPermission is a user grant. At most one row exists per (UID, TID);
// a missing row means "no opinion" while Access==0 is an explicit deny.
type UserTokenPermission struct {
	GeneralFields
	UID    int64      `gorm:"column:uid;index;not null" json:"uid"`
	TID    int64      `gorm:"column:tid;index;not null" json:"tid"`
	Access AccessMask `gorm:"not null" json:"access"`

	User  *User  `gorm:"foreignKey:UID" json:"user,omitempty"`
	Token *Token `gorm:"foreignKey:TID" json:"token,omitempty"`
}

// GroupTokenPermission is a group grant, same row semantics as user grants.
type GroupTokenPermission struct {
	GeneralFields
	GID    int64      `gorm:"column:gid;index;not null" json:"gid"`
	TID    int64      `gorm:"column:tid;index;not null" json:"tid"`
	Access AccessMask `gorm:"not null" json:"access"`

	Group *Group `gorm:"foreignKey:GID" json:"group,omitempty"`
	Token *Token `gorm:"foreignKey:TID" json:"token,omitempty"`
}

type PostStatus int32

const (
	PostDraft PostStatus = iota
	PostPublished
	PostScheduled
)

type Post struct {
	GeneralFields
	UID     int64      `gorm:"index;not null" json:"uid"`
	Title   string     `gorm:"type:varchar(256);not null" json:"title"`
	Slug    string     `gorm:"uniqueIndex;type:varchar(256);not null" json:"slug"`
	Content string     `json:"content"`
	Status  PostStatus `gorm:"default:0;not null" json:"status"`
	Pubdate int64      `gorm:"index" json:"pubdate"`
}

// PostToken attaches a token to a post. The ACL only reads this table.
type PostToken struct {
	GeneralFields
	PostID int64 `gorm:"index;not null" json:"post_id"`
	TID    int64 `gorm:"column:tid;index;not null" json:"tid"`
}

type Tag struct {
	GeneralFields
	Name string `gorm:"uniqueIndex;type:varchar(64);not null" json:"name"`
}

type PostTag struct {
	GeneralFields
	PostID int64 `gorm:"index;not null" json:"post_id"`
	TagID  int64 `gorm:"index;not null" json:"tag_id"`
}

type EventLevel int32

const (
	EventInfo EventLevel = iota
	EventNotice
	EventWarning
	EventError
	EventCritical
)

// Event is a durable audit record.
type Event struct {
	GeneralFields
	Level    EventLevel `gorm:"default:0;not null" json:"level"`
	Category string     `gorm:"index;type:varchar(64)" json:"category"`
	Source   string     `gorm:"type:varchar(64)" json:"source"`
	Message  string     `gorm:"type:varchar(1024)" json:"message"`
}

type Setting struct {
	GeneralFields
	Name  string `gorm:"uniqueIndex;type:varchar(256);not null" json:"name"`
	Value string `gorm:"type:varchar(1024);not null" json:"value"`
}
