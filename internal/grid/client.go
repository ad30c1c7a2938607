package grid

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"grid-scout/internal/config"
	"grid-scout/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	centralDataURL = "https://api-op.grid.gg/central-data/graphql"
	seriesStateURL = "https://api-op.grid.gg/live-data-feed/series-state/graphql"
)

// Client talks to the two GRID GraphQL endpoints. Transport failures and
// GraphQL-level errors both come back as plain errors; callers are expected
// to translate them into "no data" rather than abort a batch.
type Client struct {
	apiKey string
	client *fasthttp.Client
	logger zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		apiKey: cfg.GridAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         60 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

func postQuery[T any](ctx context.Context, c *Client, url, query string, variables map[string]any) (*T, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.SetBody(body)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var envelope struct {
		Data   *T             `json:"data"`
		Errors []graphqlError `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("graphql response carried no data")
	}
	return envelope.Data, nil
}

const tournamentsQuery = `
query GetRecentTournaments($limit: Int!) {
  tournaments(first: $limit) {
    edges {
      node { id name }
    }
  }
}
`

// RecentTournaments lists the most recent tournaments, capped at 50 upstream.
func (c *Client) RecentTournaments(ctx context.Context, limit int) ([]domain.Tournament, error) {
	if limit > 50 {
		limit = 50
	}
	data, err := postQuery[tournamentsData](ctx, c, centralDataURL, tournamentsQuery, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}

	tournaments := make([]domain.Tournament, 0, len(data.Tournaments.Edges))
	for _, e := range data.Tournaments.Edges {
		tournaments = append(tournaments, domain.Tournament{ID: e.Node.ID, Name: e.Node.Name})
	}
	return tournaments, nil
}

const teamsForTournamentsQuery = `
query GetTeamsFromTournaments($tournamentIds: [ID!]) {
  allSeries(first: 50, filter: { tournament: { id: { in: $tournamentIds }, includeChildren: { equals: true } } }) {
    edges {
      node {
        teams {
          baseInfo { id name }
        }
        tournament { name }
      }
    }
  }
}
`

// TeamAppearance is one team showing up in one series of one tournament.
// Duplicate appearances are expected; the discovery service merges them.
type TeamAppearance struct {
	TeamID     string
	TeamName   string
	Tournament string
}

func (c *Client) TeamsForTournaments(ctx context.Context, tournamentIDs []string) ([]TeamAppearance, error) {
	data, err := postQuery[seriesTeamsData](ctx, c, centralDataURL, teamsForTournamentsQuery, map[string]any{"tournamentIds": tournamentIDs})
	if err != nil {
		return nil, err
	}

	var appearances []TeamAppearance
	for _, e := range data.AllSeries.Edges {
		for _, t := range e.Node.Teams {
			if t.BaseInfo == nil {
				continue
			}
			appearances = append(appearances, TeamAppearance{
				TeamID:     t.BaseInfo.ID,
				TeamName:   t.BaseInfo.Name,
				Tournament: e.Node.Tournament.Name,
			})
		}
	}
	return appearances, nil
}

const seriesForTeamQuery = `
query AllSeries($filter: SeriesFilter!, $limit: Int!) {
  allSeries(
    first: $limit,
    filter: $filter,
    orderBy: StartTimeScheduled,
    orderDirection: DESC
  ) {
    edges {
      node {
        id
        tournament { name }
        startTimeScheduled
      }
    }
  }
}
`

// SeriesNode is one series row from the team listing, most recent first.
type SeriesNode struct {
	ID                 string
	TournamentName     string
	StartTimeScheduled string
}

// SeriesForTeam lists a team's series ordered by scheduled start, descending.
// tournamentID optionally scopes the listing.
func (c *Client) SeriesForTeam(ctx context.Context, teamID, tournamentID string, limit int) ([]SeriesNode, error) {
	filter := map[string]any{
		"teamIds": map[string]any{"in": []string{teamID}},
		"types":   "ESPORTS",
	}
	if tournamentID != "" {
		filter["tournament"] = map[string]any{
			"id":              map[string]any{"in": []string{tournamentID}},
			"includeChildren": map[string]any{"equals": true},
		}
	}

	data, err := postQuery[allSeriesData](ctx, c, centralDataURL, seriesForTeamQuery, map[string]any{
		"filter": filter,
		"limit":  limit,
	})
	if err != nil {
		return nil, err
	}

	nodes := make([]SeriesNode, 0, len(data.AllSeries.Edges))
	for _, e := range data.AllSeries.Edges {
		nodes = append(nodes, SeriesNode{
			ID:                 e.Node.ID,
			TournamentName:     e.Node.Tournament.Name,
			StartTimeScheduled: e.Node.StartTimeScheduled,
		})
	}
	return nodes, nil
}

// The deep state query spreads over every title-specific team state so the
// same numeric fields come back regardless of game.
const seriesStateQuery = `
query SeriesState($seriesId: ID!) {
  seriesState(id: $seriesId) {
    version
    teams { name won }
    games {
      sequenceNumber
      map { name }
      teams {
        name won side score
        ... on GameTeamStateLol {
          kills deaths netWorth money
          players { name kills deaths killAssistsGiven netWorth }
        }
        ... on GameTeamStateCs2 {
          kills deaths netWorth money
          players { name kills deaths killAssistsGiven netWorth }
        }
        ... on GameTeamStateValorant {
          kills deaths netWorth money
          players { name kills deaths killAssistsGiven netWorth }
        }
        ... on GameTeamStateDefault {
          kills deaths netWorth
          players { name kills deaths killAssistsGiven netWorth }
        }
      }
    }
  }
}
`

// SeriesState fetches the deep per-game, per-team, per-player state for one
// series. A nil state with nil error never happens: absence is an error here
// and becomes a skip at the aggregation layer.
func (c *Client) SeriesState(ctx context.Context, seriesID string) (*SeriesState, error) {
	data, err := postQuery[seriesStateData](ctx, c, seriesStateURL, seriesStateQuery, map[string]any{"seriesId": seriesID})
	if err != nil {
		return nil, err
	}
	if data.SeriesState == nil {
		return nil, fmt.Errorf("series %s has no state", seriesID)
	}
	return data.SeriesState, nil
}
