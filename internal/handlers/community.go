package handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/moderation"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/gdg-garage/mental-health-partner-api/internal/notifier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const failedModeration = "Content failed moderation check."

// CommunityHandler serves discussion groups, forum threads and posts, encouragements,
// challenges and success stories.
type CommunityHandler struct {
	db          *gorm.DB
	screen      moderation.Screen
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
	logger      *zap.Logger
	salt        string
}

func NewCommunityHandler(db *gorm.DB, screen moderation.Screen, notifier notifier.Notifier, authHandler *auth.AuthHandler, logger *zap.Logger, salt string) *CommunityHandler {
	return &CommunityHandler{db: db, screen: screen, notifier: notifier, authHandler: authHandler, logger: logger, salt: salt}
}

// displayName hides the author behind a stable pseudonym when they post anonymously.
func (h *CommunityHandler) displayName(author *models.User, anonymous bool) string {
	switch {
	case author == nil:
		return "[deleted]"
	case anonymous:
		return moderation.AnonymousName(author.Username, h.salt)
	default:
		return author.Username
	}
}

type DetailOutput struct {
	Status int
	Body   struct {
		Detail string `json:"detail"`
	}
}

func detail(status int, msg string) *DetailOutput {
	out := &DetailOutput{Status: status}
	out.Body.Detail = msg
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// Groups

type GroupResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	TopicType   string `json:"topic_type"`
	IsModerated bool   `json:"is_moderated"`
	MemberCount int64  `json:"member_count"`
	IsMember    bool   `json:"is_member"`
}

func (h *CommunityHandler) groupResponse(ctx context.Context, userID uint, g models.DiscussionGroup) (GroupResponse, error) {
	res := GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Slug:        g.Slug,
		Description: g.Description,
		TopicType:   g.TopicType,
		IsModerated: g.IsModerated,
	}
	db := h.db.WithContext(ctx)
	if err := db.Model(&models.DiscussionGroupMembership{}).Where("discussion_group_id = ?", g.ID).Count(&res.MemberCount).Error; err != nil {
		return res, err
	}
	var mine int64
	if err := db.Model(&models.DiscussionGroupMembership{}).Where("discussion_group_id = ? AND user_id = ?", g.ID, userID).Count(&mine).Error; err != nil {
		return res, err
	}
	res.IsMember = mine > 0
	return res, nil
}

type ListGroupsInput struct {
	auth.AuthInput
	Topic string `query:"topic" doc:"Filter by topic type"`
}

type GroupsOutput struct {
	Body []GroupResponse
}

func (h *CommunityHandler) HandleListGroups(ctx context.Context, input *ListGroupsInput) (*GroupsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Order("name")
	if input.Topic != "" {
		q = q.Where("topic_type = ?", input.Topic)
	}
	var groups []models.DiscussionGroup
	if err := q.Find(&groups).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list groups", err)
	}

	res := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		gr, err := h.groupResponse(ctx, userID, g)
		if err != nil {
			return nil, internalError(h.logger, "Failed to list groups", err)
		}
		res = append(res, gr)
	}
	return &GroupsOutput{Body: res}, nil
}

type CreateGroupInput struct {
	auth.AuthInput
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"100" required:"true"`
		Description string `json:"description,omitempty"`
		TopicType   string `json:"topic_type,omitempty"`
	}
}

type GroupOutput struct {
	Body GroupResponse
}

func (h *CommunityHandler) HandleCreateGroup(ctx context.Context, input *CreateGroupInput) (*GroupOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	slug := slugify(input.Body.Name)
	if slug == "" {
		return nil, huma.Error400BadRequest("Group name must contain letters or digits")
	}
	if !h.screen.Allow(input.Body.Name) || (input.Body.Description != "" && !h.screen.Allow(input.Body.Description)) {
		return nil, huma.Error403Forbidden(failedModeration)
	}

	group := models.DiscussionGroup{
		Name:        strings.TrimSpace(input.Body.Name),
		Slug:        slug,
		Description: input.Body.Description,
		TopicType:   input.Body.TopicType,
		IsModerated: true,
	}
	if err := h.db.WithContext(ctx).Create(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("A group with this name already exists.")
		}
		return nil, internalError(h.logger, "Failed to create group", err)
	}

	res, err := h.groupResponse(ctx, userID, group)
	if err != nil {
		return nil, internalError(h.logger, "Failed to create group", err)
	}
	return &GroupOutput{Body: res}, nil
}

type GroupSlugInput struct {
	auth.AuthInput
	Slug string `path:"slug"`
}

func (h *CommunityHandler) groupBySlug(ctx context.Context, slug string) (*models.DiscussionGroup, error) {
	var group models.DiscussionGroup
	err := h.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("Group not found")
	}
	if err != nil {
		return nil, internalError(h.logger, "Failed to load group", err)
	}
	return &group, nil
}

func (h *CommunityHandler) HandleGetGroup(ctx context.Context, input *GroupSlugInput) (*GroupOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	group, err := h.groupBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	res, err := h.groupResponse(ctx, userID, *group)
	if err != nil {
		return nil, internalError(h.logger, "Failed to load group", err)
	}
	return &GroupOutput{Body: res}, nil
}

type JoinGroupInput struct {
	auth.AuthInput
	Slug string `path:"slug"`
	Body struct {
		IsAnonymous bool `json:"is_anonymous,omitempty"`
	}
}

func (h *CommunityHandler) HandleJoinGroup(ctx context.Context, input *JoinGroupInput) (*DetailOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	group, err := h.groupBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	membership := models.DiscussionGroupMembership{
		UserID:            userID,
		DiscussionGroupID: group.ID,
		IsAnonymous:       input.Body.IsAnonymous,
	}
	if err := h.db.WithContext(ctx).Create(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("Already a member of this group.")
		}
		return nil, internalError(h.logger, "Failed to join group", err)
	}
	return detail(http.StatusCreated, "Successfully joined the group."), nil
}

func (h *CommunityHandler) HandleLeaveGroup(ctx context.Context, input *GroupSlugInput) (*DetailOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	group, err := h.groupBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	res := h.db.WithContext(ctx).
		Where("user_id = ? AND discussion_group_id = ?", userID, group.ID).
		Delete(&models.DiscussionGroupMembership{})
	if res.Error != nil {
		return nil, internalError(h.logger, "Failed to leave group", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, huma.Error400BadRequest("Not a member of this group.")
	}
	return detail(http.StatusOK, "Successfully left the group."), nil
}

func (h *CommunityHandler) isMember(ctx context.Context, userID, groupID uint) (bool, error) {
	var n int64
	err := h.db.WithContext(ctx).Model(&models.DiscussionGroupMembership{}).
		Where("user_id = ? AND discussion_group_id = ?", userID, groupID).
		Count(&n).Error
	return n > 0, err
}

// Threads

type ThreadResponse struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	DiscussionGroupID uint      `json:"discussion_group_id"`
	Author            string    `json:"author"`
	IsOwner           bool      `json:"is_owner"`
	IsAnonymous       bool      `json:"is_anonymous"`
	IsPinned          bool      `json:"is_pinned"`
	IsLocked          bool      `json:"is_locked"`
	PostCount         int64     `json:"post_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (h *CommunityHandler) threadResponse(userID uint, t models.ForumThread, postCount int64) ThreadResponse {
	return ThreadResponse{
		ID:                t.ID,
		Title:             t.Title,
		DiscussionGroupID: t.DiscussionGroupID,
		Author:            h.displayName(t.CreatedBy, t.IsAnonymous),
		IsOwner:           t.CreatedByID != nil && *t.CreatedByID == userID,
		IsAnonymous:       t.IsAnonymous,
		IsPinned:          t.IsPinned,
		IsLocked:          t.IsLocked,
		PostCount:         postCount,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type ListThreadsInput struct {
	auth.AuthInput
	Group string `query:"group" doc:"Filter by group slug"`
}

type ThreadsOutput struct {
	Body []ThreadResponse
}

func (h *CommunityHandler) HandleListThreads(ctx context.Context, input *ListThreadsInput) (*ThreadsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	q := db.Preload("CreatedBy").Order("forum_threads.is_pinned desc, forum_threads.updated_at desc")
	if input.Group != "" {
		q = q.Joins("JOIN discussion_groups ON discussion_groups.id = forum_threads.discussion_group_id").
			Where("discussion_groups.slug = ?", input.Group)
	}
	var threads []models.ForumThread
	if err := q.Find(&threads).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list threads", err)
	}

	res := make([]ThreadResponse, 0, len(threads))
	for _, t := range threads {
		var posts int64
		if err := db.Model(&models.ForumPost{}).Where("thread_id = ?", t.ID).Count(&posts).Error; err != nil {
			return nil, internalError(h.logger, "Failed to list threads", err)
		}
		res = append(res, h.threadResponse(userID, t, posts))
	}
	return &ThreadsOutput{Body: res}, nil
}

type CreateThreadInput struct {
	auth.AuthInput
	Body struct {
		DiscussionGroupID uint   `json:"discussion_group" required:"true"`
		Title             string `json:"title" minLength:"1" maxLength:"200" required:"true"`
		IsAnonymous       bool   `json:"is_anonymous,omitempty"`
	}
}

type ThreadOutput struct {
	Body ThreadResponse
}

func (h *CommunityHandler) HandleCreateThread(ctx context.Context, input *CreateThreadInput) (*ThreadOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	member, err := h.isMember(ctx, userID, input.Body.DiscussionGroupID)
	if err != nil {
		return nil, internalError(h.logger, "Failed to create thread", err)
	}
	if !member {
		return nil, huma.Error403Forbidden("You must be a member of the group to create a thread.")
	}
	if !h.screen.Allow(input.Body.Title) {
		return nil, huma.Error403Forbidden(failedModeration)
	}

	thread := models.ForumThread{
		Title:             strings.TrimSpace(input.Body.Title),
		DiscussionGroupID: input.Body.DiscussionGroupID,
		CreatedByID:       &userID,
		IsAnonymous:       input.Body.IsAnonymous,
	}
	if err := h.db.WithContext(ctx).Create(&thread).Error; err != nil {
		return nil, internalError(h.logger, "Failed to create thread", err)
	}
	if err := h.db.WithContext(ctx).Preload("CreatedBy").First(&thread, thread.ID).Error; err != nil {
		return nil, internalError(h.logger, "Failed to create thread", err)
	}
	return &ThreadOutput{Body: h.threadResponse(userID, thread, 0)}, nil
}

type ThreadIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type PostResponse struct {
	ID                 uint      `json:"id"`
	ThreadID           uint      `json:"thread_id"`
	Content            string    `json:"content"`
	Author             string    `json:"author"`
	IsOwner            bool      `json:"is_owner"`
	IsAnonymous        bool      `json:"is_anonymous"`
	EncouragementCount int64     `json:"encouragement_count"`
	CreatedAt          time.Time `json:"created_at"`
}

func (h *CommunityHandler) postResponses(ctx context.Context, userID uint, posts []models.ForumPost) ([]PostResponse, error) {
	res := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		pr := PostResponse{
			ID:          p.ID,
			ThreadID:    p.ThreadID,
			Content:     p.Content,
			Author:      h.displayName(p.Author, p.IsAnonymous),
			IsOwner:     p.AuthorID != nil && *p.AuthorID == userID,
			IsAnonymous: p.IsAnonymous,
			CreatedAt:   p.CreatedAt,
		}
		if err := h.db.WithContext(ctx).Model(&models.Encouragement{}).Where("post_id = ?", p.ID).Count(&pr.EncouragementCount).Error; err != nil {
			return nil, err
		}
		res = append(res, pr)
	}
	return res, nil
}

type ThreadDetailOutput struct {
	Body struct {
		ThreadResponse
		Posts []PostResponse `json:"posts"`
	}
}

func (h *CommunityHandler) thread(ctx context.Context, id uint) (*models.ForumThread, error) {
	var thread models.ForumThread
	err := h.db.WithContext(ctx).Preload("CreatedBy").First(&thread, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("Thread not found")
	}
	if err != nil {
		return nil, internalError(h.logger, "Failed to load thread", err)
	}
	return &thread, nil
}

func (h *CommunityHandler) HandleGetThread(ctx context.Context, input *ThreadIDInput) (*ThreadDetailOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	thread, err := h.thread(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	var posts []models.ForumPost
	if err := h.db.WithContext(ctx).Preload("Author").Where("thread_id = ?", thread.ID).Order("created_at, id").Find(&posts).Error; err != nil {
		return nil, internalError(h.logger, "Failed to load posts", err)
	}
	postResponses, err := h.postResponses(ctx, userID, posts)
	if err != nil {
		return nil, internalError(h.logger, "Failed to load posts", err)
	}

	res := &ThreadDetailOutput{}
	res.Body.ThreadResponse = h.threadResponse(userID, *thread, int64(len(posts)))
	res.Body.Posts = postResponses
	return res, nil
}

type UpdateThreadInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Title    *string `json:"title,omitempty" minLength:"1" maxLength:"200"`
		IsLocked *bool   `json:"is_locked,omitempty"`
	}
}

func (h *CommunityHandler) HandleUpdateThread(ctx context.Context, input *UpdateThreadInput) (*ThreadOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	thread, err := h.thread(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if thread.CreatedByID == nil || *thread.CreatedByID != userID {
		return nil, huma.Error403Forbidden("You can only edit your own threads.")
	}

	if input.Body.Title != nil {
		if !h.screen.Allow(*input.Body.Title) {
			return nil, huma.Error403Forbidden(failedModeration)
		}
		thread.Title = strings.TrimSpace(*input.Body.Title)
	}
	if input.Body.IsLocked != nil {
		thread.IsLocked = *input.Body.IsLocked
	}
	if err := h.db.WithContext(ctx).Omit("CreatedBy", "DiscussionGroup").Save(thread).Error; err != nil {
		return nil, internalError(h.logger, "Failed to update thread", err)
	}

	var posts int64
	if err := h.db.WithContext(ctx).Model(&models.ForumPost{}).Where("thread_id = ?", thread.ID).Count(&posts).Error; err != nil {
		return nil, internalError(h.logger, "Failed to update thread", err)
	}
	return &ThreadOutput{Body: h.threadResponse(userID, *thread, posts)}, nil
}

func (h *CommunityHandler) HandleDeleteThread(ctx context.Context, input *ThreadIDInput) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	thread, err := h.thread(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if thread.CreatedByID == nil || *thread.CreatedByID != userID {
		return nil, huma.Error403Forbidden("You can only delete your own threads.")
	}

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", thread.ID).Delete(&models.ForumPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ForumThread{}, thread.ID).Error
	})
	if err != nil {
		return nil, internalError(h.logger, "Failed to delete thread", err)
	}
	return nil, nil
}

// Posts

type ListPostsInput struct {
	auth.AuthInput
	Thread uint `query:"thread" doc:"Filter by thread ID"`
}

type PostsOutput struct {
	Body []PostResponse
}

func (h *CommunityHandler) HandleListPosts(ctx context.Context, input *ListPostsInput) (*PostsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Preload("Author").Order("created_at, id")
	if input.Thread != 0 {
		q = q.Where("thread_id = ?", input.Thread)
	}
	var posts []models.ForumPost
	if err := q.Find(&posts).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list posts", err)
	}
	res, err := h.postResponses(ctx, userID, posts)
	if err != nil {
		return nil, internalError(h.logger, "Failed to list posts", err)
	}
	return &PostsOutput{Body: res}, nil
}

type CreatePostInput struct {
	auth.AuthInput
	Body struct {
		ThreadID    uint   `json:"thread" required:"true"`
		Content     string `json:"content" minLength:"1" required:"true"`
		IsAnonymous bool   `json:"is_anonymous,omitempty"`
	}
}

type PostOutput struct {
	Body PostResponse
}

func (h *CommunityHandler) HandleCreatePost(ctx context.Context, input *CreatePostInput) (*PostOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	thread, err := h.thread(ctx, input.Body.ThreadID)
	if err != nil {
		return nil, err
	}

	member, err := h.isMember(ctx, userID, thread.DiscussionGroupID)
	if err != nil {
		return nil, internalError(h.logger, "Failed to create post", err)
	}
	if !member {
		return nil, huma.Error403Forbidden("You must be a member of the group to post.")
	}
	if thread.IsLocked {
		return nil, huma.Error403Forbidden("This thread is locked.")
	}
	if !h.screen.Allow(input.Body.Content) {
		return nil, huma.Error403Forbidden(failedModeration)
	}

	post := models.ForumPost{
		ThreadID:    thread.ID,
		Content:     input.Body.Content,
		AuthorID:    &userID,
		IsAnonymous: input.Body.IsAnonymous,
	}
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		// keep active threads at the top of the listing
		return tx.Model(&models.ForumThread{}).Where("id = ?", thread.ID).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, internalError(h.logger, "Failed to create post", err)
	}
	if err := h.db.WithContext(ctx).Preload("Author").First(&post, post.ID).Error; err != nil {
		return nil, internalError(h.logger, "Failed to create post", err)
	}

	res, err := h.postResponses(ctx, userID, []models.ForumPost{post})
	if err != nil {
		return nil, internalError(h.logger, "Failed to create post", err)
	}
	return &PostOutput{Body: res[0]}, nil
}

type PostIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *CommunityHandler) HandleDeletePost(ctx context.Context, input *PostIDInput) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var post models.ForumPost
	if err := h.db.WithContext(ctx).First(&post, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Post not found")
	}
	if post.AuthorID == nil || *post.AuthorID != userID {
		return nil, huma.Error403Forbidden("You can only delete your own posts.")
	}
	if err := h.db.WithContext(ctx).Delete(&post).Error; err != nil {
		return nil, internalError(h.logger, "Failed to delete post", err)
	}
	return nil, nil
}

// Encouragements

type ToggleEncouragementInput struct {
	auth.AuthInput
	Body struct {
		PostID            uint   `json:"post" required:"true"`
		EncouragementType string `json:"encouragement_type,omitempty" enum:"support,hug,strength,celebrate"`
	}
}

type ToggleOutput struct {
	Status int
	Body   struct {
		Detail        string                `json:"detail,omitempty"`
		Encouragement *models.Encouragement `json:"encouragement,omitempty"`
	}
}

// HandleToggleEncouragement adds the caller's encouragement to a post (201) or removes it (200).
func (h *CommunityHandler) HandleToggleEncouragement(ctx context.Context, input *ToggleEncouragementInput) (*ToggleOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	var post models.ForumPost
	if err := h.db.WithContext(ctx).First(&post, input.Body.PostID).Error; err != nil {
		return nil, huma.Error404NotFound("Post not found")
	}

	res := &ToggleOutput{}
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("post_id = ? AND user_id = ?", post.ID, userID).Delete(&models.Encouragement{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			res.Status = http.StatusOK
			res.Body.Detail = "Encouragement removed."
			return nil
		}

		kind := input.Body.EncouragementType
		if kind == "" {
			kind = "support"
		}
		enc := models.Encouragement{PostID: post.ID, UserID: userID, EncouragementType: kind}
		if err := tx.Create(&enc).Error; err != nil {
			return err
		}
		res.Status = http.StatusCreated
		res.Body.Encouragement = &enc
		return nil
	})
	if err != nil {
		return nil, internalError(h.logger, "Failed to toggle encouragement", err)
	}
	return res, nil
}

type EncouragementsOutput struct {
	Body []models.Encouragement
}

func (h *CommunityHandler) HandleListEncouragements(ctx context.Context, input *auth.AuthInput) (*EncouragementsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	encouragements := []models.Encouragement{}
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&encouragements).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list encouragements", err)
	}
	return &EncouragementsOutput{Body: encouragements}, nil
}
