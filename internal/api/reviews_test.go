package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
	apperrors "github.com/TheManchineel/ludika-go/internal/errors"
)

func TestReviewsMyReviewAbsentIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews/3/my-review", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Review not found"}`)) //nolint:errcheck
	}))
	defer server.Close()

	reviews := NewReviews(newTestGateway(t, server.URL))
	review, err := reviews.MyReview(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, review)
}

func TestReviewsMyReviewFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":14,"review_text":"Loved it","ratings":[{"score":5,"criterion":{"id":1,"name":"Gameplay"}}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	reviews := NewReviews(newTestGateway(t, server.URL))
	review, err := reviews.MyReview(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.Equal(t, 14, review.ID)
	require.NotNil(t, review.ReviewText)
	assert.Equal(t, "Loved it", *review.ReviewText)
	require.Len(t, review.Ratings, 1)
	assert.Equal(t, 5, review.Ratings[0].Score)
}

func TestReviewsMyReviewOtherFailuresPropagate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Not allowed"}`)) //nolint:errcheck
	}))
	defer server.Close()

	reviews := NewReviews(newTestGateway(t, server.URL))
	_, err := reviews.MyReview(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestReviewsSubmitMinePutsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/reviews/3/my-review", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"review_text":"Solid","ratings":[{"criterion_id":1,"score":4}]}`,
			string(body))

		w.Write([]byte(`{"id":20,"review_text":"Solid"}`)) //nolint:errcheck
	}))
	defer server.Close()

	reviews := NewReviews(newTestGateway(t, server.URL))
	text := "Solid"
	review, err := reviews.SubmitMine(context.Background(), 3, model.ReviewCreate{
		ReviewText: &text,
		Ratings:    []model.ReviewRatingCreate{{CriterionID: 1, Score: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, review.ID)
}

func TestReviewsDeletePaths(t *testing.T) {
	userID := uuid.MustParse("3f1c4b6a-9d2e-4f5a-8b7c-6d5e4f3a2b1c")

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reviews := NewReviews(newTestGateway(t, server.URL))
	ctx := context.Background()

	require.NoError(t, reviews.DeleteMine(ctx, 3))
	require.NoError(t, reviews.DeleteUserReview(ctx, 3, userID))

	assert.Equal(t, []string{
		"/reviews/3/my-review",
		"/reviews/3/" + userID.String(),
	}, paths)
}

func TestReviewsCriteria(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews/criteria", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Gameplay"},{"id":2,"name":"Accessibility","description":"Ease of entry"}]`)) //nolint:errcheck
	}))
	defer server.Close()

	reviews := NewReviews(newTestGateway(t, server.URL))
	criteria, err := reviews.Criteria(context.Background())
	require.NoError(t, err)
	require.Len(t, criteria, 2)
	assert.Equal(t, "Gameplay", criteria[0].Name)
	require.NotNil(t, criteria[1].Description)
	assert.Equal(t, "Ease of entry", *criteria[1].Description)
}
