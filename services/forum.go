package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/models"
)

// ForumFilters narrows directory, post and comment listings.
type ForumFilters struct {
	Page      int
	PageSize  int
	Search    string
	Directory int
	Parent    int
	Author    int
	Ordering  string
}

func (f ForumFilters) values() url.Values {
	params := url.Values{}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(f.PageSize))
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Directory > 0 {
		params.Set("directory", strconv.Itoa(f.Directory))
	}
	if f.Parent > 0 {
		params.Set("parent", strconv.Itoa(f.Parent))
	}
	if f.Author > 0 {
		params.Set("author", strconv.Itoa(f.Author))
	}
	if f.Ordering != "" {
		params.Set("ordering", f.Ordering)
	}
	return params
}

// ForumService maps 1:1 onto the /forum endpoint family.
type ForumService struct {
	client *api.Client
}

func NewForumService(client *api.Client) *ForumService {
	return &ForumService{client: client}
}

// ==================== Directories ====================

func (s *ForumService) DirectoryTree(ctx context.Context) ([]models.DirectoryTree, error) {
	var tree []models.DirectoryTree
	err := s.client.Get(ctx, "/forum/directories/tree/", nil, &tree)
	return tree, err
}

func (s *ForumService) Directories(ctx context.Context, filters ForumFilters) (models.Paginated[models.Directory], error) {
	var page models.Paginated[models.Directory]
	err := s.client.Get(ctx, "/forum/directories/", filters.values(), &page)
	return page, err
}

func (s *ForumService) Directory(ctx context.Context, id int) (models.Directory, error) {
	var dir models.Directory
	err := s.client.Get(ctx, fmt.Sprintf("/forum/directories/%d/", id), nil, &dir)
	return dir, err
}

func (s *ForumService) CreateDirectory(ctx context.Context, data models.DirectoryCreateRequest) (models.Directory, error) {
	if err := checkRequest(data); err != nil {
		return models.Directory{}, err
	}
	var dir models.Directory
	err := s.client.Post(ctx, "/forum/directories/", data, &dir)
	return dir, err
}

func (s *ForumService) UpdateDirectory(ctx context.Context, id int, data models.DirectoryUpdateRequest) (models.Directory, error) {
	var dir models.Directory
	err := s.client.Patch(ctx, fmt.Sprintf("/forum/directories/%d/", id), data, &dir)
	return dir, err
}

func (s *ForumService) DeleteDirectory(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/forum/directories/%d/", id))
}

// MoveDirectory reparents a directory; a nil parent moves it to the root.
func (s *ForumService) MoveDirectory(ctx context.Context, id int, parentID *int) (models.Directory, error) {
	var dir models.Directory
	err := s.client.Post(ctx, fmt.Sprintf("/forum/directories/%d/move/", id),
		map[string]*int{"parent_directory": parentID}, &dir)
	return dir, err
}

// ==================== Posts ====================

func (s *ForumService) Posts(ctx context.Context, filters ForumFilters) (models.Paginated[models.Post], error) {
	var page models.Paginated[models.Post]
	err := s.client.Get(ctx, "/forum/posts/", filters.values(), &page)
	return page, err
}

func (s *ForumService) Post(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := s.client.Get(ctx, fmt.Sprintf("/forum/posts/%d/", id), nil, &post)
	return post, err
}

func (s *ForumService) CreatePost(ctx context.Context, data models.PostCreateRequest) (models.Post, error) {
	if err := checkRequest(data); err != nil {
		return models.Post{}, err
	}
	var post models.Post
	err := s.client.Post(ctx, "/forum/posts/", data, &post)
	return post, err
}

func (s *ForumService) UpdatePost(ctx context.Context, id int, data models.PostUpdateRequest) (models.Post, error) {
	var post models.Post
	err := s.client.Patch(ctx, fmt.Sprintf("/forum/posts/%d/", id), data, &post)
	return post, err
}

func (s *ForumService) DeletePost(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/forum/posts/%d/", id))
}

func (s *ForumService) MovePost(ctx context.Context, id int, directoryID *int) (models.Post, error) {
	var post models.Post
	err := s.client.Post(ctx, fmt.Sprintf("/forum/posts/%d/move/", id),
		map[string]*int{"directory": directoryID}, &post)
	return post, err
}

func (s *ForumService) TogglePostPin(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := s.client.Post(ctx, fmt.Sprintf("/forum/posts/%d/toggle-pin/", id), nil, &post)
	return post, err
}

func (s *ForumService) TogglePostLock(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := s.client.Post(ctx, fmt.Sprintf("/forum/posts/%d/toggle-lock/", id), nil, &post)
	return post, err
}

// ==================== Comments ====================

func (s *ForumService) Comments(ctx context.Context, postID int, filters ForumFilters) (models.Paginated[models.Comment], error) {
	var page models.Paginated[models.Comment]
	err := s.client.Get(ctx, fmt.Sprintf("/forum/posts/%d/comments/", postID), filters.values(), &page)
	return page, err
}

func (s *ForumService) Comment(ctx context.Context, id int) (models.Comment, error) {
	var comment models.Comment
	err := s.client.Get(ctx, fmt.Sprintf("/forum/comments/%d/", id), nil, &comment)
	return comment, err
}

func (s *ForumService) CreateComment(ctx context.Context, data models.CommentCreateRequest) (models.Comment, error) {
	if err := checkRequest(data); err != nil {
		return models.Comment{}, err
	}
	var comment models.Comment
	err := s.client.Post(ctx, fmt.Sprintf("/forum/posts/%d/comments/", data.Post), data, &comment)
	return comment, err
}

func (s *ForumService) UpdateComment(ctx context.Context, id int, data models.CommentUpdateRequest) (models.Comment, error) {
	if err := checkRequest(data); err != nil {
		return models.Comment{}, err
	}
	var comment models.Comment
	err := s.client.Patch(ctx, fmt.Sprintf("/forum/comments/%d/", id), data, &comment)
	return comment, err
}

func (s *ForumService) DeleteComment(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/forum/comments/%d/", id))
}

// ==================== Stats / permissions ====================

func (s *ForumService) Stats(ctx context.Context) (models.ForumStats, error) {
	var stats models.ForumStats
	err := s.client.Get(ctx, "/forum/stats/", nil, &stats)
	return stats, err
}

func (s *ForumService) Permissions(ctx context.Context) (models.ForumPermissions, error) {
	var perms models.ForumPermissions
	err := s.client.Get(ctx, "/forum/permissions/", nil, &perms)
	return perms, err
}
