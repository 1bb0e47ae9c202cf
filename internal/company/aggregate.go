package company

import "strings"

// AggregateByDomain collapses raw per-page records into one Record per
// distinct domain. Records lacking a usable domain are skipped silently.
// Input order is followed, but because the merge is a set union the final
// content is independent of merge order.
func AggregateByDomain(records []PageRecord) map[string]*Record {
	domainRecords := make(map[string]*Record)

	for i := range records {
		pr := &records[i]
		domain := strings.TrimSpace(pr.Domain)
		if domain == "" {
			continue
		}

		record, err := FromPageRecord(pr)
		if err != nil {
			continue
		}

		existing, ok := domainRecords[domain]
		if !ok {
			domainRecords[domain] = record
			continue
		}

		merged, mergeErr := existing.MergeWith(record)
		if mergeErr != nil {
			// Unreachable for same-key records; keep the existing record.
			continue
		}
		domainRecords[domain] = merged
	}

	return domainRecords
}
