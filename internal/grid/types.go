package grid

type tournamentsData struct {
	Tournaments struct {
		Edges []struct {
			Node struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"tournaments"`
}

type seriesTeamsData struct {
	AllSeries struct {
		Edges []struct {
			Node struct {
				Teams []struct {
					BaseInfo *struct {
						ID   string `json:"id"`
						Name string `json:"name"`
					} `json:"baseInfo"`
				} `json:"teams"`
				Tournament struct {
					Name string `json:"name"`
				} `json:"tournament"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"allSeries"`
}

type allSeriesData struct {
	AllSeries struct {
		Edges []struct {
			Node struct {
				ID         string `json:"id"`
				Tournament struct {
					Name string `json:"name"`
				} `json:"tournament"`
				StartTimeScheduled string `json:"startTimeScheduled"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"allSeries"`
}

type seriesStateData struct {
	SeriesState *SeriesState `json:"seriesState"`
}

// SeriesState is the deep state of one series: the series-level result per
// team plus per-game team and player stat lines.
type SeriesState struct {
	Version string       `json:"version"`
	Teams   []SeriesTeam `json:"teams"`
	Games   []GameState  `json:"games"`
}

type SeriesTeam struct {
	Name string `json:"name"`
	Won  bool   `json:"won"`
}

type GameState struct {
	SequenceNumber int `json:"sequenceNumber"`
	Map            *struct {
		Name string `json:"name"`
	} `json:"map"`
	Teams []GameTeamState `json:"teams"`
}

type GameTeamState struct {
	Name     string       `json:"name"`
	Won      bool         `json:"won"`
	Side     string       `json:"side"`
	Score    int          `json:"score"`
	Kills    int          `json:"kills"`
	Deaths   int          `json:"deaths"`
	NetWorth int          `json:"netWorth"`
	Players  []GamePlayer `json:"players"`
}

type GamePlayer struct {
	Name             string `json:"name"`
	Kills            int    `json:"kills"`
	Deaths           int    `json:"deaths"`
	KillAssistsGiven int    `json:"killAssistsGiven"`
	NetWorth         int    `json:"netWorth"`
}
