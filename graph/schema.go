package graph

import (
	"time"

	"blogapi/models"

	"github.com/graphql-go/graphql"
)

// NewSchema builds the executable schema around a Resolver. Type and field
// names follow the public API: Post, User, AuthData, getPostsData,
// StatusData, inputs UserInputData and PostInputData.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).ID.Hex(), nil
				},
			},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			// Nullable on purpose: createUser responses carry the stored hash.
			"password": &graphql.Field{Type: graphql.String},
			"status":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Post).ID.Hex(), nil
				},
			},
			"title":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"creator": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post := p.Source.(*models.Post)
					if post.Creator != nil {
						return post.Creator, nil
					}
					return r.Users.ByID(p.Context, post.CreatorID)
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Post).CreatedAt.Format(time.RFC3339), nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Post).UpdatedAt.Format(time.RFC3339), nil
				},
			},
		},
	})

	// User.posts and Post.creator are mutually recursive, so posts is added
	// after both types exist.
	userType.AddFieldConfig("posts", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user := p.Source.(*models.User)
			return r.Posts.ByCreator(p.Context, user.ID)
		},
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postsDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "getPostsData",
		Fields: graphql.Fields{
			"totalPosts": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"posts":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType)))},
		},
	})

	statusDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "StatusData",
		Fields: graphql.Fields{
			"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			// Nullable: updatePost keeps the current image when absent.
			"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authDataType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					return r.Login(p.Context, email, password)
				},
			},
			"getPosts": &graphql.Field{
				Type: postsDataType,
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					return r.GetPosts(p.Context, page)
				},
			},
			"getPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return r.GetPost(p.Context, id)
				},
			},
			"getUserStatus": &graphql.Field{
				Type: statusDataType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.GetUserStatus(p.Context)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"inputUser": &graphql.ArgumentConfig{Type: userInputType},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["inputUser"].(map[string]interface{})
					return r.CreateUser(p.Context, UserInput{
						Email:    stringArg(raw, "email"),
						Password: stringArg(raw, "password"),
						Name:     stringArg(raw, "name"),
					})
				},
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"inputPost": &graphql.ArgumentConfig{Type: postInputType},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CreatePost(p.Context, postInputFromArgs(p.Args))
				},
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"inputPost": &graphql.ArgumentConfig{Type: postInputType},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return r.UpdatePost(p.Context, id, postInputFromArgs(p.Args))
				},
			},
			"deletePost": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return r.DeletePost(p.Context, id)
				},
			},
			"updateStatus": &graphql.Field{
				Type: graphql.NewNonNull(statusDataType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					status, _ := p.Args["status"].(string)
					return r.UpdateStatus(p.Context, status)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func postInputFromArgs(args map[string]interface{}) PostInput {
	raw, _ := args["inputPost"].(map[string]interface{})
	input := PostInput{
		Title:   stringArg(raw, "title"),
		Content: stringArg(raw, "content"),
	}
	if imageURL, ok := raw["imageUrl"].(string); ok {
		input.ImageURL = &imageURL
	}
	return input
}
