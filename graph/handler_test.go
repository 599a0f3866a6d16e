package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogapi/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
		Data    []struct {
			Message string `json:"message"`
			Status  int    `json:"status"`
		} `json:"data"`
	} `json:"errors"`
}

func newTestServer(t *testing.T) (*gin.Engine, *Resolver) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resolver, _, _ := newTestResolver(t)
	schema, err := NewSchema(resolver)
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.Auth(resolver.Tokens))
	gql := Handler(schema)
	router.POST("/graphql", gql)
	router.GET("/graphql", gql)
	return router, resolver
}

func doGraphQL(t *testing.T, router *gin.Engine, token, query string, variables map[string]interface{}) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandlerCreateUserAndLogin(t *testing.T) {
	router, _ := newTestServer(t)

	resp := doGraphQL(t, router, "", `
		mutation {
			createUser(inputUser: {email: "me@example.com", password: "secret1", name: "Max"}) {
				_id
				email
				status
			}
		}`, nil)
	require.Empty(t, resp.Errors)

	var created struct {
		ID     string `json:"_id"`
		Email  string `json:"email"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["createUser"], &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "me@example.com", created.Email)
	require.Equal(t, "I am new!", created.Status)

	resp = doGraphQL(t, router, "", `
		query {
			login(email: "me@example.com", password: "secret1") {
				userId
				token
			}
		}`, nil)
	require.Empty(t, resp.Errors)

	var login struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["login"], &login))
	require.Equal(t, created.ID, login.UserID)
	require.NotEmpty(t, login.Token)
}

func TestHandlerUnauthenticatedEnvelope(t *testing.T) {
	router, _ := newTestServer(t)

	resp := doGraphQL(t, router, "", `query { getUserStatus { status } }`, nil)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "User unauthenticated", resp.Errors[0].Message)
	require.Equal(t, 401, resp.Errors[0].Status)
	require.Empty(t, resp.Errors[0].Data)
}

func TestHandlerValidationEnvelope(t *testing.T) {
	router, _ := newTestServer(t)

	resp := doGraphQL(t, router, "", `
		mutation {
			createUser(inputUser: {email: "nope", password: "nodigits", name: ""}) {
				_id
			}
		}`, nil)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "Invalid input", resp.Errors[0].Message)
	require.Equal(t, 422, resp.Errors[0].Status)
	require.Len(t, resp.Errors[0].Data, 3)
	for _, sub := range resp.Errors[0].Data {
		require.Equal(t, 422, sub.Status)
		require.NotEmpty(t, sub.Message)
	}
}

func TestHandlerEngineErrorsPassThrough(t *testing.T) {
	router, _ := newTestServer(t)

	resp := doGraphQL(t, router, "", `query { noSuchField }`, nil)
	require.NotEmpty(t, resp.Errors)
	require.NotEmpty(t, resp.Errors[0].Message)
	// untouched engine errors carry no status tag
	require.Zero(t, resp.Errors[0].Status)
}

func TestHandlerFullPostFlow(t *testing.T) {
	router, resolver := newTestServer(t)

	created, err := resolver.CreateUser(context.Background(), UserInput{
		Email:    "me@example.com",
		Password: "secret1",
		Name:     "Max",
	})
	require.NoError(t, err)
	token, err := resolver.Tokens.Issue(created.ID.Hex(), created.Email)
	require.NoError(t, err)

	resp := doGraphQL(t, router, token, `
		mutation {
			createPost(inputPost: {title: "A valid title", content: "Some real content", imageUrl: "images/cat.png"}) {
				_id
				title
				imageUrl
				createdAt
				creator { _id name }
			}
		}`, nil)
	require.Empty(t, resp.Errors)

	var post struct {
		ID        string `json:"_id"`
		Title     string `json:"title"`
		ImageURL  string `json:"imageUrl"`
		CreatedAt string `json:"createdAt"`
		Creator   struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		} `json:"creator"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["createPost"], &post))
	require.Equal(t, "A valid title", post.Title)
	require.Equal(t, created.ID.Hex(), post.Creator.ID)
	_, err = time.Parse(time.RFC3339, post.CreatedAt)
	require.NoError(t, err)

	resp = doGraphQL(t, router, token, `
		query {
			getPosts(page: 1) {
				totalPosts
				posts { _id title creator { name } }
			}
		}`, nil)
	require.Empty(t, resp.Errors)

	var page struct {
		TotalPosts int `json:"totalPosts"`
		Posts      []struct {
			ID      string `json:"_id"`
			Title   string `json:"title"`
			Creator struct {
				Name string `json:"name"`
			} `json:"creator"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["getPosts"], &page))
	require.Equal(t, 1, page.TotalPosts)
	require.Len(t, page.Posts, 1)
	require.Equal(t, post.ID, page.Posts[0].ID)
	require.Equal(t, "Max", page.Posts[0].Creator.Name)

	resp = doGraphQL(t, router, token, `
		mutation Delete($id: ID!) {
			deletePost(id: $id)
		}`, map[string]interface{}{"id": post.ID})
	require.Empty(t, resp.Errors)

	resp = doGraphQL(t, router, token, `query Get($id: ID!) { getPost(id: $id) { _id } }`,
		map[string]interface{}{"id": post.ID})
	require.Len(t, resp.Errors, 1)
	require.Equal(t, 404, resp.Errors[0].Status)
}
