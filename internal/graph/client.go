// Package graph implements directory.Directory over the Microsoft Graph REST API.
package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/aadsync/internal/transport"
	"github.com/agentstation/aadsync/pkg/constants"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
)

const userSelect = "id,userPrincipalName,displayName,mail"

// Client is a Microsoft Graph directory client.
type Client struct {
	baseURL   string
	transport *transport.Client
}

var _ directory.Directory = (*Client)(nil)

// New creates a Graph client. An empty baseURL uses the public v1.0 endpoint.
func New(tc *transport.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = constants.GraphBaseURL
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		transport: tc,
	}
}

// Me implements directory.Directory.
func (c *Client) Me(ctx context.Context) (*directory.User, error) {
	query := url.Values{"$select": {userSelect}}

	var me userResponse
	if err := c.get(ctx, "/me?"+encodeQuery(query), &me); err != nil {
		return nil, err
	}
	u := me.user()
	return &u, nil
}

// FindUsers implements directory.Directory.
func (c *Client) FindUsers(ctx context.Context, principalName string) ([]directory.User, error) {
	query := url.Values{
		"$filter": {eq("userPrincipalName", principalName)},
		"$select": {userSelect},
	}

	var list listResponse[userResponse]
	if err := c.get(ctx, "/users?"+encodeQuery(query), &list); err != nil {
		return nil, err
	}
	users := make([]directory.User, 0, len(list.Value))
	for _, u := range list.Value {
		users = append(users, u.user())
	}
	return users, nil
}

// FindTargets implements directory.Directory.
func (c *Client) FindTargets(ctx context.Context, resource directory.Resource, displayName string, relation directory.Relation) ([]directory.Target, error) {
	query := url.Values{
		"$filter": {eq("displayName", displayName)},
		"$expand": {string(relation)},
	}

	var list listResponse[targetResponse]
	if err := c.get(ctx, "/"+string(resource)+"?"+encodeQuery(query), &list); err != nil {
		return nil, err
	}
	targets := make([]directory.Target, 0, len(list.Value))
	for _, t := range list.Value {
		targets = append(targets, t.target(resource, relation))
	}
	return targets, nil
}

// AddReference implements directory.Directory. Graph answers 400 with an
// "already exist" message when the object is already in the relation; that
// case is reported as errors.ErrReferenceExists.
func (c *Client) AddReference(ctx context.Context, ref directory.Reference, objectID string) error {
	if err := validateIDs(ref.TargetID, objectID); err != nil {
		return err
	}

	path := fmt.Sprintf("/%s/%s/%s/$ref", ref.Resource, ref.TargetID, ref.Relation)
	body := referenceRequest{ODataID: c.baseURL + "/directoryObjects/" + objectID}

	resp, err := c.transport.Post(ctx, c.baseURL+path, body)
	if err != nil {
		return err
	}
	err = transport.DecodeResponse(resp, constants.GraphServiceName, nil)

	var apiErr *errors.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest &&
		strings.Contains(apiErr.Message, "already exist") {
		return fmt.Errorf("%w: %w", errors.ErrReferenceExists, err)
	}
	return err
}

// RemoveReference implements directory.Directory. A 404 means the object is
// not in the relation and is reported as errors.ErrReferenceNotFound.
func (c *Client) RemoveReference(ctx context.Context, ref directory.Reference, objectID string) error {
	if err := validateIDs(ref.TargetID, objectID); err != nil {
		return err
	}

	path := fmt.Sprintf("/%s/%s/%s/%s/$ref", ref.Resource, ref.TargetID, ref.Relation, objectID)

	resp, err := c.transport.Delete(ctx, c.baseURL+path)
	if err != nil {
		return err
	}
	err = transport.DecodeResponse(resp, constants.GraphServiceName, nil)

	var apiErr *errors.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", errors.ErrReferenceNotFound, err)
	}
	return err
}

func (c *Client) get(ctx context.Context, pathAndQuery string, target any) error {
	resp, err := c.transport.Get(ctx, c.baseURL+pathAndQuery)
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, constants.GraphServiceName, target)
}

// validateIDs rejects anything that is not a directory object ID before it
// is placed in a URL path.
func validateIDs(ids ...string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return errors.NewValidationError("id", id, "not a directory object ID")
		}
	}
	return nil
}
