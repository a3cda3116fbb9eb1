package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func pingHandler(c *gin.Context) {
	startTime := time.Now()

	var res AliveResponseSpec

	res.Status = "Alive"
	res.Runtime = time.Since(startTime).Milliseconds()

	c.JSON(http.StatusOK, res)
}

func detectHandler(c *gin.Context, pipeline *Pipeline) {
	startTime := time.Now()

	var d DetectionSpec

	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(d.Source) == 0 || len(d.EventType) == 0 || d.Confidence == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source, event_type and confidence are required"})
		return
	}

	result, err := pipeline.Submit(d.Source, d.EventType, *d.Confidence, d.Meta)
	if err != nil {
		if errors.Is(err, ErrInvalidDetection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var res DetectionResponseSpec
	res.Status = result.Status
	res.Reason = result.Reason
	res.Source = d.Source
	res.EventType = d.EventType
	res.Confidence = *d.Confidence
	res.History = result.History
	res.Event = result.Event
	res.Runtime = time.Since(startTime).Milliseconds()

	c.JSON(http.StatusOK, res)
}

func frameHandler(c *gin.Context, smoother *FrameSmoother, pipeline *Pipeline) {
	startTime := time.Now()

	frame, err := c.GetRawData()
	if err != nil || len(frame) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty frame"})
		return
	}

	result, err := smoother.PushFrame(c.Request.Context(), frame)
	if err != nil {
		if errors.Is(err, errNoDetector) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	var res FrameResponseSpec

	if result == nil {
		res.Status = "buffering"
		res.Runtime = time.Since(startTime).Milliseconds()
		c.JSON(http.StatusAccepted, res)
		return
	}

	res.Status = "flushed"
	res.Result = result

	if result.Suspicious {
		submitted, err := pipeline.Submit(sourceVideo, eventSuspiciousActivity, result.Confidence(), map[string]interface{}{
			"votes":        result.Votes,
			"person_count": result.PersonCount,
			"detections":   result.Detections,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		res.Confirmation = submitted.Status
		res.Event = submitted.Event
	}

	res.Runtime = time.Since(startTime).Milliseconds()

	c.JSON(http.StatusOK, res)
}

func latestHandler(c *gin.Context, store *EventStore) {
	n := defaultLatestLimit
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}

	events, err := store.Latest(n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}

func allHandler(c *gin.Context, store *EventStore) {
	limit := defaultAllLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	events, err := store.All(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}
