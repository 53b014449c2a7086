package api

import "errors"

// Common request structures

// SegmentIDsRequest defines the body for the segment management routes.
// Callers may send the IDs under either segment_ids or segmentIds;
// segment_ids wins when both are present.
type SegmentIDsRequest struct {
	SegmentIDs      []string `json:"segment_ids"`
	SegmentIDsCamel []string `json:"segmentIds"`
}

// IDs resolves the two accepted body keys into a single list.
func (req *SegmentIDsRequest) IDs() []string {
	if len(req.SegmentIDs) > 0 {
		return req.SegmentIDs
	}
	return req.SegmentIDsCamel
}

// Validate implements the shared request validation interface.
func (req *SegmentIDsRequest) Validate() error {
	if len(req.IDs()) == 0 {
		return errors.New("segment_ids is required and must be a non-empty array")
	}
	return nil
}
