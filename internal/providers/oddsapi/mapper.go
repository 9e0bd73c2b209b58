package oddsapi

import (
	"math"
	"strings"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
)

func mapGame(e eventResponse) props.Game {
	game := props.Game{
		ID:           e.ID,
		CommenceTime: e.CommenceTime,
		HomeTeam:     e.HomeTeam,
		AwayTeam:     e.AwayTeam,
		Books:        make([]props.BookPrice, 0, len(e.Bookmakers)),
	}
	for _, book := range e.Bookmakers {
		price, ok := mapMoneyline(book, e.HomeTeam, e.AwayTeam)
		if ok {
			game.Books = append(game.Books, price)
		}
	}
	return game
}

func mapMoneyline(book bookmakerResponse, home, away string) (props.BookPrice, bool) {
	for _, market := range book.Markets {
		if market.Key != marketH2H {
			continue
		}
		price := props.BookPrice{Bookmaker: book.Title, LastUpdate: book.LastUpdate}
		var sawHome, sawAway bool
		for _, o := range market.Outcomes {
			if o.Price == nil {
				continue
			}
			switch o.Name {
			case home:
				price.HomePrice = americanPrice(*o.Price)
				sawHome = true
			case away:
				price.AwayPrice = americanPrice(*o.Price)
				sawAway = true
			}
		}
		if sawHome && sawAway {
			return price, true
		}
	}
	return props.BookPrice{}, false
}

// mapProps flattens an event's bookmakers into props, keeping only books whose
// title is in allowed.
func mapProps(e eventResponse, allowed map[string]struct{}) []props.Prop {
	var out []props.Prop
	for _, book := range e.Bookmakers {
		if _, ok := allowed[book.Title]; !ok {
			continue
		}
		for _, market := range book.Markets {
			for _, o := range market.Outcomes {
				if p, ok := mapOutcome(o, market.Key, book.Title, e.ID); ok {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

func mapOutcome(o outcomeResponse, stat, bookmaker, eventID string) (props.Prop, bool) {
	player := strings.TrimSpace(o.Description)
	if player == "" {
		player = strings.TrimSpace(o.Name)
	}
	if player == "" || o.Price == nil {
		return props.Prop{}, false
	}

	// Yes/no markets carry no point and settle on at least one.
	line := defaultPoint
	if o.Point != nil {
		line = *o.Point
	}

	return props.Prop{
		Player:    player,
		Stat:      stat,
		Line:      line,
		Odds:      americanPrice(*o.Price),
		Bookmaker: bookmaker,
		Side:      mapSide(o),
		EventID:   eventID,
	}, true
}

func mapSide(o outcomeResponse) props.Side {
	if strings.TrimSpace(o.Description) == "" {
		return props.SideOver
	}
	switch {
	case strings.EqualFold(o.Name, sideUnder), strings.EqualFold(o.Name, "No"):
		return props.SideUnder
	default:
		return props.SideOver
	}
}

func americanPrice(v float64) int {
	return int(math.Round(v))
}

func titleSet(titles []string) map[string]struct{} {
	set := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		set[t] = struct{}{}
	}
	return set
}
