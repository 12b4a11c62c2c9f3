// pre_processor.go implements the shader source splitter. A single source file
// carries every stage of a program, with each stage introduced by a line of the
// form "#type <stagename>"; the stage body runs from the following line up to
// the next directive or end of input. Splitting happens once, at shader
// construction, before any driver resource is allocated.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/ziben-go/engine/renderer/driver"
)

// typeToken introduces a stage section in combined shader source.
const typeToken = "#type"

// stageKinds maps directive stage names to stage kinds. Names are
// case-sensitive; "pixel" is an accepted alias for the fragment stage.
var stageKinds = map[string]driver.StageKind{
	"vertex":         driver.StageVertex,
	"fragment":       driver.StageFragment,
	"pixel":          driver.StageFragment,
	"geometry":       driver.StageGeometry,
	"tessControl":    driver.StageTessControl,
	"tessEvaluation": driver.StageTessEvaluation,
	"compute":        driver.StageCompute,
}

// ParseStages splits combined shader source into a map from stage kind to the
// verbatim body text of that stage. Source with no "#type" directives yields an
// empty map; the caller decides whether that is an error. Malformed directives
// (unknown stage name, or a directive line with no end-of-line) are hard errors
// raised before any driver resource exists.
//
// Parameters:
//   - source: the combined multi-stage shader source text
//
// Returns:
//   - map[driver.StageKind]string: stage bodies keyed by stage kind
//   - error: a parse error if any directive is malformed
func ParseStages(source string) (map[driver.StageKind]string, error) {
	stages := make(map[driver.StageKind]string)

	position := strings.Index(source, typeToken)
	for position != -1 {
		eol := strings.IndexAny(source[position:], "\r\n")
		if eol == -1 {
			return nil, fmt.Errorf("missing end of line after %q directive", typeToken)
		}
		eol += position

		begin := position + len(typeToken) + 1
		if begin > eol {
			return nil, fmt.Errorf("missing stage name after %q directive", typeToken)
		}

		name := source[begin:eol]
		kind, ok := stageKinds[name]
		if !ok {
			return nil, fmt.Errorf("unknown shader stage kind %q", name)
		}

		bodyStart := eol
		for bodyStart < len(source) && (source[bodyStart] == '\r' || source[bodyStart] == '\n') {
			bodyStart++
		}
		if bodyStart == len(source) {
			return nil, fmt.Errorf("missing body for %s stage", kind)
		}

		next := strings.Index(source[bodyStart:], typeToken)
		if next == -1 {
			stages[kind] = source[bodyStart:]
			break
		}
		position = bodyStart + next
		stages[kind] = source[bodyStart:position]
	}

	return stages, nil
}
