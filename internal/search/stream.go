package search

import (
	"context"
	"log"

	"airea-platform/internal/geo"
)

const streamBatchSize = 5

// StreamEmitter receives pipeline events as they happen. Returning
// false stops the stream, typically when the client disconnected.
type StreamEmitter func(event string, data interface{}) bool

type streamStatus struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type streamDone struct {
	Count  int  `json:"count"`
	AIUsed bool `json:"aiUsed"`
}

// Stream runs the pipeline like Search but emits progress events:
// "status" for each stage, "filters" once extracted, "batch" for every
// few ranked results, and "done" with the final count. Streamed
// responses skip the response cache since events carry the payload.
func (p *Pipeline) Stream(ctx context.Context, req Request, emit StreamEmitter) error {
	query := normalize(req.Query)
	if req.Limit <= 0 || req.Limit > candidateLimit {
		req.Limit = defaultPageLimit
	}

	if !emit("status", streamStatus{Stage: "understanding", Message: "understanding your query"}) {
		return nil
	}

	corrected := p.dict.CorrectQuery(query)
	expanded := corrected
	if p.expander != nil {
		expanded = p.expander.ExpandQuery(ctx, corrected, p.dict)
	}
	if expanded != query {
		if !emit("status", streamStatus{Stage: "rewritten", Message: expanded}) {
			return nil
		}
	}

	filters := ParseHeuristic(expanded, p.dict)
	aiUsed := false
	if req.SearchType == "ai" && p.completer != nil {
		if p.spendCredit(req.AgentID) {
			aiCtx, cancel := context.WithTimeout(ctx, p.aiTimeout)
			filters, aiUsed = ParseAI(aiCtx, p.completer, expanded, filters)
			cancel()
		}
	}
	if !emit("filters", filters) {
		return nil
	}

	var center *geo.Point
	if filters.Location != "" && p.geocoder != nil {
		if !emit("status", streamStatus{Stage: "locating", Message: filters.Location}) {
			return nil
		}
		loc, err := p.geocoder.Resolve(ctx, filters.Location)
		if err != nil {
			log.Printf("geocode failed location=%q err=%v", filters.Location, err)
		}
		if loc != nil {
			emit("location", loc)
			pt := loc.Point
			center = &pt
		} else if filters.Proximity {
			emit("done", streamDone{Count: 0, AIUsed: aiUsed})
			return nil
		}
	}

	if !emit("status", streamStatus{Stage: "searching", Message: "matching listings"}) {
		return nil
	}

	ranked, err := p.fetchAndRank(expanded, filters, center)
	if err != nil {
		return err
	}
	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	p.attachStations(ranked)

	for start := 0; start < len(ranked); start += streamBatchSize {
		end := start + streamBatchSize
		if end > len(ranked) {
			end = len(ranked)
		}
		if !emit("batch", ranked[start:end]) {
			return nil
		}
	}

	emit("done", streamDone{Count: len(ranked), AIUsed: aiUsed})
	return nil
}
