package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"gator-feed/internal/models"
	"gator-feed/internal/utils"
)

// API is the remote boundary the mutation coordinator talks to. The
// transport is opaque to the coordinator; it only sees success, failure,
// and the decoded records.
type API interface {
	FetchFeed(ctx context.Context, opts FeedOptions) ([]models.PostRecord, error)
	VotePost(ctx context.Context, postID string, dir models.VoteDirection) error
	VoteComment(ctx context.Context, commentID string, dir models.VoteDirection) error
	CreateComment(ctx context.Context, postAuthorID, postID, content, tempID string) (*models.CommentRecord, error)
	CreatePost(ctx context.Context, userID, title, content, tempID string) (*models.PostRecord, error)
	DeletePost(ctx context.Context, postID string) error
	DeleteComment(ctx context.Context, commentID string) error
}

// SortKey is the feed sort parameter. Purely a query-string concern;
// the store never sees it.
type SortKey string

const (
	SortTotalVotes SortKey = "total_votes"
	SortUpvotes    SortKey = "upvotes_cnt"
	SortDownvotes  SortKey = "dnvotes_cnt"
	SortCreatedAt  SortKey = "created_at"
)

type FeedOptions struct {
	Sort  SortKey
	Order string // "asc" or "desc"
}

// Client talks JSON to the gator-swamp social-media API. The underlying
// transport retries connection errors and 5xx responses with backoff,
// and imposes the network-boundary timeout so a call that never settles
// still surfaces as a failure.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration, retryMax int) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	httpClient := retryClient.StandardClient()
	httpClient.Timeout = timeout

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}
}

func (c *Client) FetchFeed(ctx context.Context, opts FeedOptions) ([]models.PostRecord, error) {
	endpoint := "/social_media/feed"
	if opts.Sort != "" {
		q := url.Values{}
		q.Set("sort", string(opts.Sort))
		if opts.Order != "" {
			q.Set("order", opts.Order)
		}
		endpoint += "?" + q.Encode()
	}

	body, err := c.makeRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Items []models.PostRecord `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, utils.NewAppError(utils.ErrBadResponse, "failed to parse feed response", err)
	}
	return result.Items, nil
}

func (c *Client) VotePost(ctx context.Context, postID string, dir models.VoteDirection) error {
	data := map[string]interface{}{"vote": string(dir)}
	_, err := c.makeRequest(ctx, http.MethodPost, "/social_media/post/"+postID, data)
	return err
}

func (c *Client) VoteComment(ctx context.Context, commentID string, dir models.VoteDirection) error {
	data := map[string]interface{}{"vote": string(dir)}
	_, err := c.makeRequest(ctx, http.MethodPost, "/social_media/comment/"+commentID, data)
	return err
}

func (c *Client) CreateComment(ctx context.Context, postAuthorID, postID, content, tempID string) (*models.CommentRecord, error) {
	data := map[string]interface{}{
		"content": content,
		"temp_id": tempID, // Server echoes this back so the commit can be keyed
	}
	endpoint := fmt.Sprintf("/social_media/%s/post/%s/comment", postAuthorID, postID)

	body, err := c.makeRequest(ctx, http.MethodPost, endpoint, data)
	if err != nil {
		return nil, err
	}

	var result struct {
		Comment models.CommentRecord `json:"comment"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, utils.NewAppError(utils.ErrBadResponse, "failed to parse comment response", err)
	}
	return &result.Comment, nil
}

func (c *Client) CreatePost(ctx context.Context, userID, title, content, tempID string) (*models.PostRecord, error) {
	data := map[string]interface{}{
		"title":   title,
		"content": content,
		"temp_id": tempID,
	}
	endpoint := fmt.Sprintf("/social_media/%s/post", userID)

	body, err := c.makeRequest(ctx, http.MethodPost, endpoint, data)
	if err != nil {
		return nil, err
	}

	var result struct {
		Post models.PostRecord `json:"post"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, utils.NewAppError(utils.ErrBadResponse, "failed to parse post response", err)
	}
	return &result.Post, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	_, err := c.makeRequest(ctx, http.MethodDelete, "/social_media/post/"+postID, nil)
	return err
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	_, err := c.makeRequest(ctx, http.MethodDelete, "/social_media/comment/"+commentID, nil)
	return err
}

// makeRequest sends one JSON request and returns the response body.
// A non-2xx status is a transport-level failure; a 2xx body carrying an
// "error" field is a soft server-reported failure, and both come back
// as *utils.AppError.
func (c *Client) makeRequest(ctx context.Context, method, endpoint string, data interface{}) ([]byte, error) {
	var body []byte
	var err error

	if data != nil {
		body, err = json.Marshal(data)
		if err != nil {
			return nil, utils.NewAppError(utils.ErrInvalidInput, "failed to encode request body", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, utils.NewRemoteError(method+" "+endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.NewRemoteError(method+" "+endpoint, err)
	}

	if resp.StatusCode >= 400 {
		return nil, utils.NewAppError(utils.ErrRemoteFailed,
			fmt.Sprintf("request failed with status %d", resp.StatusCode), nil)
	}

	if softErr := softFailure(respBody); softErr != "" {
		return nil, utils.NewSoftFailureError(method+" "+endpoint, softErr)
	}

	return respBody, nil
}

// softFailure extracts the error message from a 2xx body that carries
// an error field, or "" when the body is clean. Non-object bodies are
// clean by definition.
func softFailure(body []byte) string {
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Error
}
