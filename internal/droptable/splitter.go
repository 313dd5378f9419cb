package droptable

import "strings"

// missionBlock is one mission's slice of the document: its header fields and
// the trailing content up to the next mission header.
type missionBlock struct {
	Planet  string
	Mission string
	Type    string
	Content string
}

// splitMissions partitions the corpus on mission headers. Content before the
// first header belongs to no mission and is discarded. A header regex that
// never matches yields no blocks, which downstream treats as zero records —
// the document is third-party, so misalignment fails closed rather than
// panicking.
func splitMissions(text string) []missionBlock {
	matches := missionHeaderRe.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]missionBlock, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = append(blocks, missionBlock{
			Planet:  strings.TrimSpace(text[m[2]:m[3]]),
			Mission: strings.TrimSpace(text[m[4]:m[5]]),
			Type:    strings.TrimSpace(text[m[6]:m[7]]),
			Content: text[m[1]:end],
		})
	}
	return blocks
}

// rotationSegment is the content following one rotation header (or the
// rotationless head of a mission block).
type rotationSegment struct {
	Label   string
	Content string
}

// splitRotations partitions a mission's content on rotation headers. Content
// before the first header is labeled RotationlessLabel; blank heads are
// dropped.
func splitRotations(content string) []rotationSegment {
	matches := rotationRe.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return []rotationSegment{{Label: RotationlessLabel, Content: content}}
	}

	segments := make([]rotationSegment, 0, len(matches)+1)
	if head := content[:matches[0][0]]; strings.TrimSpace(head) != "" {
		segments = append(segments, rotationSegment{Label: RotationlessLabel, Content: head})
	}
	for i, m := range matches {
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segments = append(segments, rotationSegment{
			Label:   content[m[2]:m[3]],
			Content: content[m[1]:end],
		})
	}
	return segments
}
