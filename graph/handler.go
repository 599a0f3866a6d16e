package graph

import (
	"errors"
	"net/http"

	"blogapi/apperr"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/handler"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves the GraphQL endpoint. POST requests execute directly so
// resolver errors can be rewritten into the {message, status, data} envelope;
// anything else falls through to the stock handler, which serves GraphiQL.
func Handler(schema graphql.Schema) gin.HandlerFunc {
	graphiql := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			graphiql.ServeHTTP(c.Writer, c.Request)
			return
		}

		var body request
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			OperationName:  body.OperationName,
			Context:        c.Request.Context(),
		})

		resp := gin.H{"data": result.Data}
		if len(result.Errors) > 0 {
			resp["errors"] = shapeErrors(result.Errors)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// shapeErrors rewrites errors whose original cause is an *apperr.Error into
// the uniform envelope. Engine errors with no original cause (syntax,
// validation against the schema) pass through unchanged.
func shapeErrors(errs []gqlerrors.FormattedError) []interface{} {
	shaped := make([]interface{}, 0, len(errs))
	for _, formatted := range errs {
		appErr := unwrapAppError(formatted.OriginalError())
		if appErr == nil {
			shaped = append(shaped, formatted)
			continue
		}

		data := make([]gin.H, 0, len(appErr.Data))
		for _, sub := range appErr.Data {
			data = append(data, gin.H{"message": sub.Message, "status": sub.Status})
		}
		shaped = append(shaped, gin.H{
			"message": appErr.Message,
			"status":  apperr.StatusOf(appErr),
			"data":    data,
		})
	}
	return shaped
}

func unwrapAppError(err error) *apperr.Error {
	for err != nil {
		if appErr, ok := err.(*apperr.Error); ok {
			return appErr
		}
		switch e := err.(type) {
		case *gqlerrors.Error:
			err = e.OriginalError
		case gqlerrors.FormattedError:
			err = e.OriginalError()
		default:
			err = errors.Unwrap(err)
		}
	}
	return nil
}
