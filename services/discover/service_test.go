package discover

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmera/config"
	"filmera/models"
	"filmera/services/records"
)

type fakeCatalog struct {
	nowPlaying []models.CatalogMovie
	popular    []models.CatalogMovie
	details    map[int64]models.CatalogMovie
	failDetail int64 // MovieByID fails for this id when non-zero
	err        error
}

func (f *fakeCatalog) NowPlaying(ctx context.Context) (*models.CatalogListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CatalogListing{Results: f.nowPlaying}, nil
}

func (f *fakeCatalog) Popular(ctx context.Context) (*models.CatalogListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CatalogListing{Results: f.popular}, nil
}

func (f *fakeCatalog) MovieByID(ctx context.Context, id int64) (*models.CatalogMovie, error) {
	if f.failDetail != 0 && id == f.failDetail {
		return nil, errors.New("upstream exploded")
	}
	movie, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("unknown id %d", id)
	}
	return &movie, nil
}

type fakeRecordsClient struct {
	hits     []models.RecordMovie
	noResult bool
	failKey  string
}

func (f *fakeRecordsClient) SearchByTitle(ctx context.Context, query string) ([]models.RecordMovie, error) {
	if f.noResult {
		return nil, records.ErrNoResults
	}
	return f.hits, nil
}

func (f *fakeRecordsClient) ByID(ctx context.Context, key string) (*models.RecordMovie, error) {
	if key == f.failKey {
		return nil, errors.New("upstream exploded")
	}
	return &models.RecordMovie{ImdbID: key, Title: "Detail " + key, Response: "True"}, nil
}

func testLimits() config.DiscoverySettings {
	return config.DiscoverySettings{BannerLimit: 3, PopularLimit: 2, SearchLimit: 2}
}

func catalogMovies(n int, backdropEvery int) []models.CatalogMovie {
	movies := make([]models.CatalogMovie, n)
	for i := range movies {
		movies[i] = models.CatalogMovie{ID: int64(i + 1), Title: fmt.Sprintf("Movie %d", i+1)}
		if backdropEvery > 0 && (i%backdropEvery) == 0 {
			movies[i].BackdropPath = fmt.Sprintf("/backdrop%d.jpg", i+1)
		}
	}
	return movies
}

func TestBannersFiltersAndCaps(t *testing.T) {
	catalog := &fakeCatalog{nowPlaying: catalogMovies(10, 2)} // ids 1,3,5,7,9 have backdrops
	svc := NewService(catalog, &fakeRecordsClient{}, testLimits())

	banners, err := svc.Banners(context.Background())
	require.NoError(t, err)
	require.Len(t, banners, 3)
	for _, movie := range banners {
		assert.NotEmpty(t, movie.BackdropPath)
	}
	assert.Equal(t, int64(1), banners[0].ID)
	assert.Equal(t, int64(3), banners[1].ID)
}

func TestBannersEmptyListing(t *testing.T) {
	catalog := &fakeCatalog{nowPlaying: catalogMovies(4, 0)} // no backdrops at all
	svc := NewService(catalog, &fakeRecordsClient{}, testLimits())

	banners, err := svc.Banners(context.Background())
	require.NoError(t, err)
	assert.Empty(t, banners)
}

func TestPopularEnrichesInOrder(t *testing.T) {
	catalog := &fakeCatalog{
		popular: catalogMovies(5, 0),
		details: map[int64]models.CatalogMovie{
			1: {ID: 1, Title: "Movie 1", Runtime: 101},
			2: {ID: 2, Title: "Movie 2", Runtime: 102},
		},
	}
	svc := NewService(catalog, &fakeRecordsClient{}, testLimits())

	popular, err := svc.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, popular, 2, "listing must be capped before enrichment")
	assert.Equal(t, 101, popular[0].Runtime)
	assert.Equal(t, 102, popular[1].Runtime)
}

func TestPopularBatchFailureIsAllOrNothing(t *testing.T) {
	catalog := &fakeCatalog{
		popular: catalogMovies(2, 0),
		details: map[int64]models.CatalogMovie{
			1: {ID: 1, Title: "Movie 1"},
		},
		failDetail: 2,
	}
	svc := NewService(catalog, &fakeRecordsClient{}, testLimits())

	popular, err := svc.Popular(context.Background())
	require.Error(t, err, "one failed detail fetch must fail the whole batch")
	assert.Nil(t, popular, "no partial batch may be returned")
}

func TestSearchEnrichesHits(t *testing.T) {
	client := &fakeRecordsClient{hits: []models.RecordMovie{
		{ImdbID: "tt1"}, {ImdbID: "tt2"}, {ImdbID: "tt3"},
	}}
	svc := NewService(&fakeCatalog{}, client, testLimits())

	results, err := svc.Search(context.Background(), "heat")
	require.NoError(t, err)
	require.Len(t, results, 2, "hits must be capped before enrichment")
	assert.Equal(t, "Detail tt1", results[0].Title)
	assert.Equal(t, "Detail tt2", results[1].Title)
}

func TestSearchNoResultsPropagates(t *testing.T) {
	svc := NewService(&fakeCatalog{}, &fakeRecordsClient{noResult: true}, testLimits())

	_, err := svc.Search(context.Background(), "zzzzz")
	assert.ErrorIs(t, err, records.ErrNoResults)
}

func TestSearchBatchFailureIsAllOrNothing(t *testing.T) {
	client := &fakeRecordsClient{
		hits:    []models.RecordMovie{{ImdbID: "tt1"}, {ImdbID: "tt2"}},
		failKey: "tt2",
	}
	svc := NewService(&fakeCatalog{}, client, testLimits())

	results, err := svc.Search(context.Background(), "heat")
	require.Error(t, err)
	assert.Nil(t, results)
}
