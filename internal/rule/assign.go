package rule

// CampaignRef ties a campaign to the account that owns it. The list comes
// from a separately fetched campaign inventory at save time.
type CampaignRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// GroupCampaignAssignments derives the campaignAssignments map by grouping
// the selected campaign ids under their owning account. It is recomputed in
// full on every save rather than maintained incrementally. Campaigns whose
// owner is not in the reference list are dropped; selection order is kept
// within each account's list.
func GroupCampaignAssignments(campaignIDs []string, refs []CampaignRef) map[string][]string {
	owner := make(map[string]string, len(refs))
	for _, r := range refs {
		if r.Username != "" {
			owner[r.ID] = r.Username
		}
	}

	out := make(map[string][]string)
	for _, id := range campaignIDs {
		u, ok := owner[id]
		if !ok {
			continue
		}
		out[u] = append(out[u], id)
	}
	return out
}
