package models

// ============================================================================
// FORUM MODELS
// ============================================================================

// AccessLevel restricts who can see a directory.
type AccessLevel string

const (
	AccessAll   AccessLevel = "all"
	AccessBoard AccessLevel = "board"
)

// HighlightStyle is the closed set of directory accent styles.
type HighlightStyle string

const (
	HighlightNone          HighlightStyle = "none"
	HighlightManagement    HighlightStyle = "management"
	HighlightOrchestra     HighlightStyle = "orchestra"
	HighlightEntertainment HighlightStyle = "entertainment"
	HighlightImportant     HighlightStyle = "important"
)

type PostSummary struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Author    User   `json:"author"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Directory is a forum category node. Parent references form a tree; the
// backend validates parent assignments.
type Directory struct {
	ID                  int            `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	Parent              *int           `json:"parent,omitempty"`
	AccessLevel         AccessLevel    `json:"access_level"`
	HighlightStyle      HighlightStyle `json:"highlight_style"`
	Order               int            `json:"order"`
	Author              User           `json:"author"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at"`
	PostsCount          int            `json:"posts_count"`
	SubdirectoriesCount int            `json:"subdirectories_count"`
	LastPost            *PostSummary   `json:"last_post,omitempty"`
	CanEdit             bool           `json:"can_edit"`
	CanDelete           bool           `json:"can_delete"`
}

// DirectoryTree is the nested shape served by the tree endpoint.
type DirectoryTree struct {
	ID                  int             `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	AccessLevel         AccessLevel     `json:"access_level"`
	HighlightStyle      HighlightStyle  `json:"highlight_style"`
	Order               int             `json:"order"`
	Subdirectories      []DirectoryTree `json:"subdirectories"`
	PostsCount          int             `json:"posts_count"`
	SubdirectoriesCount int             `json:"subdirectories_count"`
}

type CommentSummary struct {
	ID        int    `json:"id"`
	Author    User   `json:"author"`
	CreatedAt string `json:"created_at"`
}

type Post struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Directory     *Directory      `json:"directory,omitempty"`
	Author        User            `json:"author"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
	IsPinned      bool            `json:"is_pinned"`
	IsLocked      bool            `json:"is_locked"`
	ViewsCount    int             `json:"views_count"`
	CommentsCount int             `json:"comments_count"`
	LastComment   *CommentSummary `json:"last_comment,omitempty"`
	CanEdit       bool            `json:"can_edit"`
	CanDelete     bool            `json:"can_delete"`
}

type Comment struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	Post      int    `json:"post"`
	Author    User   `json:"author"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
}

type ForumStats struct {
	TotalPosts       int `json:"total_posts"`
	TotalComments    int `json:"total_comments"`
	TotalDirectories int `json:"total_directories"`
}

// ForumPermissions is the backend's resolved forum capability set for the
// current user.
type ForumPermissions struct {
	CanCreateDirectory    bool `json:"can_create_directory"`
	CanCreateAnnouncement bool `json:"can_create_announcement"`
	CanPinPosts           bool `json:"can_pin_posts"`
	CanLockPosts          bool `json:"can_lock_posts"`
	IsBoardMember         bool `json:"is_board_member"`
}

// ============================================================================
// FORUM REQUESTS
// ============================================================================

type DirectoryCreateRequest struct {
	Name           string         `json:"name" validate:"required"`
	Description    string         `json:"description,omitempty"`
	Parent         *int           `json:"parent,omitempty"`
	AccessLevel    AccessLevel    `json:"access_level,omitempty"`
	HighlightStyle HighlightStyle `json:"highlight_style,omitempty"`
	Order          *int           `json:"order,omitempty"`
}

type DirectoryUpdateRequest struct {
	Name           *string         `json:"name,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Parent         *int            `json:"parent,omitempty"`
	AccessLevel    *AccessLevel    `json:"access_level,omitempty"`
	HighlightStyle *HighlightStyle `json:"highlight_style,omitempty"`
	Order          *int            `json:"order,omitempty"`
}

type PostCreateRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Directory *int   `json:"directory,omitempty"`
}

type PostUpdateRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Directory *int    `json:"directory,omitempty"`
}

type CommentCreateRequest struct {
	Content string `json:"content" validate:"required"`
	Post    int    `json:"post" validate:"required"`
}

type CommentUpdateRequest struct {
	Content string `json:"content" validate:"required"`
}
