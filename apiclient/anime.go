package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// animePathPrefix is the gateway's pass-through surface to the anime
// catalog service. All catalog calls are credentialed: the gateway uses
// the session to personalize and record access.
const animePathPrefix = "/ext/anime"

// listing fetches one page of a named catalog rail.
func (c *Client) listing(ctx context.Context, rail string, page, perPage int) (*AnimePage, error) {
	return call[AnimePage](ctx, c, Request{
		Endpoint:            fmt.Sprintf("%s/%s?page=%d&perPage=%d", animePathPrefix, rail, page, perPage),
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}

// SearchAnime searches the catalog by free-text query.
func (c *Client) SearchAnime(ctx context.Context, query string, page, perPage int) (*AnimePage, error) {
	return call[AnimePage](ctx, c, Request{
		Endpoint: fmt.Sprintf("%s/search?q=%s&page=%d&perPage=%d",
			animePathPrefix, url.QueryEscape(query), page, perPage),
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}

// PopularAnime fetches one page of the popular rail.
func (c *Client) PopularAnime(ctx context.Context, page, perPage int) (*AnimePage, error) {
	return c.listing(ctx, "popular", page, perPage)
}

// TrendingAnime fetches one page of the trending rail.
func (c *Client) TrendingAnime(ctx context.Context, page, perPage int) (*AnimePage, error) {
	return c.listing(ctx, "trending", page, perPage)
}

// UpcomingAnime fetches one page of the upcoming rail.
func (c *Client) UpcomingAnime(ctx context.Context, page, perPage int) (*AnimePage, error) {
	return c.listing(ctx, "upcoming", page, perPage)
}

// RecentlyReleasedAnime fetches one page of the recently released rail.
func (c *Client) RecentlyReleasedAnime(ctx context.Context, page, perPage int) (*AnimePage, error) {
	return c.listing(ctx, "recently-released", page, perPage)
}

// AnimeRecommendations fetches one page of recommendations.
func (c *Client) AnimeRecommendations(ctx context.Context, page, perPage int) (*AnimePage, error) {
	return c.listing(ctx, "recommendations", page, perPage)
}

// AnimeBySeason fetches one page of a seasonal listing. Season is one
// of WINTER, SPRING, SUMMER, FALL.
func (c *Client) AnimeBySeason(ctx context.Context, year int, season string, page, perPage int) (*AnimePage, error) {
	return call[AnimePage](ctx, c, Request{
		Endpoint: fmt.Sprintf("%s/season/%d/%s?page=%d&perPage=%d",
			animePathPrefix, year, url.PathEscape(season), page, perPage),
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}

// ExploreAnime fetches one page of catalog entries matching the tags.
func (c *Client) ExploreAnime(ctx context.Context, tags []string, page, perPage int) (*AnimePage, error) {
	return call[AnimePage](ctx, c, Request{
		Endpoint: fmt.Sprintf("%s/explore?tags=%s&page=%d&perPage=%d",
			animePathPrefix, url.QueryEscape(strings.Join(tags, ",")), page, perPage),
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}

// AnimeDetails fetches the full record and streaming providers for a
// single anime. Viewing a detail page also records history server-side.
func (c *Client) AnimeDetails(ctx context.Context, id int) (*AnimeDetail, error) {
	return call[AnimeDetail](ctx, c, Request{
		Endpoint:            fmt.Sprintf("%s/%d", animePathPrefix, id),
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}
