package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
)

// ForumStore caches the directory tree, directory/post/comment listings and
// the backend-resolved forum permissions.
type ForumStore struct {
	service *services.ForumService

	mu sync.Mutex

	tree        []models.DirectoryTree
	directories []models.Directory
	posts       []models.Post
	comments    []models.Comment
	stats       *models.ForumStats
	permissions *models.ForumPermissions

	loading     bool
	creating    bool
	updating    bool
	treeLoading bool
	permLoading bool
	err         string

	treeGen     uint64
	dirsGen     uint64
	postsGen    uint64
	commentsGen uint64
}

func NewForumStore(service *services.ForumService) *ForumStore {
	return &ForumStore{service: service}
}

// ==================== State accessors ====================

func (s *ForumStore) DirectoryTree() []models.DirectoryTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DirectoryTree, len(s.tree))
	copy(out, s.tree)
	return out
}

func (s *ForumStore) Directories() []models.Directory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Directory, len(s.directories))
	copy(out, s.directories)
	return out
}

func (s *ForumStore) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *ForumStore) Comments() []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

func (s *ForumStore) Stats() *models.ForumStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	stats := *s.stats
	return &stats
}

func (s *ForumStore) Permissions() *models.ForumPermissions {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.permissions == nil {
		return nil
	}
	perms := *s.permissions
	return &perms
}

func (s *ForumStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ForumStore) IsCreating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creating
}

func (s *ForumStore) IsUpdating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating
}

func (s *ForumStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ForumStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// ==================== Directory actions ====================

// LoadDirectoryTree fetches the tree once; subsequent calls are no-ops
// unless force is set or the tree is still empty.
func (s *ForumStore) LoadDirectoryTree(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.treeLoading || (!force && len(s.tree) > 0) {
		s.mu.Unlock()
		return
	}
	s.treeGen++
	gen := s.treeGen
	s.treeLoading = true
	s.mu.Unlock()

	tree, err := s.service.DirectoryTree(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.treeLoading = false
	if gen != s.treeGen {
		return
	}
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania drzewa katalogów")
		return
	}
	s.tree = tree
}

func (s *ForumStore) LoadDirectories(ctx context.Context, filters services.ForumFilters) {
	s.mu.Lock()
	s.dirsGen++
	gen := s.dirsGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	page, err := s.service.Directories(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.dirsGen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania katalogów")
		return
	}
	s.directories = page.Results
}

// CreateDirectory adds a directory, then reloads the tree so nesting counts
// stay consistent.
func (s *ForumStore) CreateDirectory(ctx context.Context, data models.DirectoryCreateRequest) bool {
	s.mu.Lock()
	s.creating = true
	s.err = ""
	s.mu.Unlock()

	dir, err := s.service.CreateDirectory(ctx, data)
	var tree []models.DirectoryTree
	if err == nil {
		tree, err = s.service.DirectoryTree(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creating = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas tworzenia katalogu", []fieldLabel{
			{"name", "Nazwa"},
			{"parent", "Katalog nadrzędny"},
		})
		return false
	}
	s.directories = append(s.directories, dir)
	s.tree = tree
	return true
}

func (s *ForumStore) UpdateDirectory(ctx context.Context, id int, data models.DirectoryUpdateRequest) bool {
	s.mu.Lock()
	s.updating = true
	s.err = ""
	s.mu.Unlock()

	dir, err := s.service.UpdateDirectory(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas aktualizacji katalogu")
		return false
	}
	s.replaceDirectory(dir)
	return true
}

func (s *ForumStore) DeleteDirectory(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	err := s.service.DeleteDirectory(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas usuwania katalogu")
		return false
	}
	kept := s.directories[:0]
	for _, dir := range s.directories {
		if dir.ID != id {
			kept = append(kept, dir)
		}
	}
	s.directories = kept
	return true
}

func (s *ForumStore) MoveDirectory(ctx context.Context, id int, parentID *int) bool {
	s.mu.Lock()
	s.updating = true
	s.err = ""
	s.mu.Unlock()

	dir, err := s.service.MoveDirectory(ctx, id, parentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas przenoszenia katalogu")
		return false
	}
	s.replaceDirectory(dir)
	return true
}

// Breadcrumbs builds the ancestor path of a directory from the cached
// listing, root first. The walk is bounded by a visited set: a parent chain
// that revisits a node or leaves the cache reports an error instead of
// looping.
func (s *ForumStore) Breadcrumbs(id int) ([]models.Directory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[int]models.Directory, len(s.directories))
	for _, dir := range s.directories {
		byID[dir.ID] = dir
	}

	var path []models.Directory
	visited := make(map[int]bool)
	for cur := id; ; {
		if visited[cur] {
			return nil, fmt.Errorf("directory parent chain contains a cycle at %d", cur)
		}
		visited[cur] = true

		dir, ok := byID[cur]
		if !ok {
			return nil, fmt.Errorf("directory %d not in cached listing", cur)
		}
		path = append([]models.Directory{dir}, path...)
		if dir.Parent == nil {
			return path, nil
		}
		cur = *dir.Parent
	}
}

// ==================== Post actions ====================

func (s *ForumStore) LoadPosts(ctx context.Context, filters services.ForumFilters) {
	s.mu.Lock()
	s.postsGen++
	gen := s.postsGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	page, err := s.service.Posts(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.postsGen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania postów")
		return
	}
	s.posts = page.Results
}

func (s *ForumStore) CreatePost(ctx context.Context, data models.PostCreateRequest) bool {
	s.mu.Lock()
	s.creating = true
	s.err = ""
	s.mu.Unlock()

	post, err := s.service.CreatePost(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creating = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas tworzenia posta", []fieldLabel{
			{"title", "Tytuł"},
			{"content", "Treść"},
		})
		return false
	}
	s.posts = append(s.posts, post)
	return true
}

func (s *ForumStore) UpdatePost(ctx context.Context, id int, data models.PostUpdateRequest) bool {
	s.mu.Lock()
	s.updating = true
	s.err = ""
	s.mu.Unlock()

	post, err := s.service.UpdatePost(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas aktualizacji posta")
		return false
	}
	s.replacePost(post)
	return true
}

func (s *ForumStore) DeletePost(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	err := s.service.DeletePost(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas usuwania posta")
		return false
	}
	kept := s.posts[:0]
	for _, post := range s.posts {
		if post.ID != id {
			kept = append(kept, post)
		}
	}
	s.posts = kept
	return true
}

func (s *ForumStore) MovePost(ctx context.Context, id int, directoryID *int) bool {
	s.mu.Lock()
	s.updating = true
	s.err = ""
	s.mu.Unlock()

	post, err := s.service.MovePost(ctx, id, directoryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas przenoszenia posta")
		return false
	}
	s.replacePost(post)
	return true
}

func (s *ForumStore) TogglePostPin(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.updating = true
	s.err = ""
	s.mu.Unlock()

	post, err := s.service.TogglePostPin(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas przypinania posta")
		return false
	}
	s.replacePost(post)
	return true
}

func (s *ForumStore) TogglePostLock(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.updating = true
	s.err = ""
	s.mu.Unlock()

	post, err := s.service.TogglePostLock(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas blokowania posta")
		return false
	}
	s.replacePost(post)
	return true
}

// ==================== Comment actions ====================

func (s *ForumStore) LoadComments(ctx context.Context, postID int, filters services.ForumFilters) {
	s.mu.Lock()
	s.commentsGen++
	gen := s.commentsGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	page, err := s.service.Comments(ctx, postID, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.commentsGen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania komentarzy")
		return
	}
	s.comments = page.Results
}

func (s *ForumStore) CreateComment(ctx context.Context, data models.CommentCreateRequest) bool {
	s.mu.Lock()
	s.creating = true
	s.err = ""
	s.mu.Unlock()

	comment, err := s.service.CreateComment(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creating = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas dodawania komentarza", []fieldLabel{
			{"content", "Treść"},
		})
		return false
	}
	s.comments = append(s.comments, comment)
	return true
}

func (s *ForumStore) UpdateComment(ctx context.Context, id int, data models.CommentUpdateRequest) bool {
	s.mu.Lock()
	s.updating = true
	s.err = ""
	s.mu.Unlock()

	comment, err := s.service.UpdateComment(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas aktualizacji komentarza")
		return false
	}
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments[i] = comment
			break
		}
	}
	return true
}

func (s *ForumStore) DeleteComment(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	err := s.service.DeleteComment(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas usuwania komentarza")
		return false
	}
	kept := s.comments[:0]
	for _, comment := range s.comments {
		if comment.ID != id {
			kept = append(kept, comment)
		}
	}
	s.comments = kept
	return true
}

// ==================== Stats / permissions ====================

func (s *ForumStore) LoadStats(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	stats, err := s.service.Stats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania statystyk forum")
		return
	}
	s.stats = &stats
}

// LoadPermissions fetches the forum capability set once; force refetches.
func (s *ForumStore) LoadPermissions(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.permLoading || (!force && s.permissions != nil) {
		s.mu.Unlock()
		return
	}
	s.permLoading = true
	s.mu.Unlock()

	perms, err := s.service.Permissions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.permLoading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania uprawnień forum")
		return
	}
	s.permissions = &perms
}

func (s *ForumStore) replaceDirectory(dir models.Directory) {
	for i := range s.directories {
		if s.directories[i].ID == dir.ID {
			s.directories[i] = dir
			return
		}
	}
}

func (s *ForumStore) replacePost(post models.Post) {
	for i := range s.posts {
		if s.posts[i].ID == post.ID {
			s.posts[i] = post
			return
		}
	}
}
