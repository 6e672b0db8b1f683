// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolve

import (
	"fmt"

	"github.com/ianlewis/go-cedict/entry"
)

// Stage identifies a resolution pass.
type Stage string

const (
	// StageClassifiers is the classifier resolution pass.
	StageClassifiers Stage = "classifiers"

	// StageVariants is the variant chain resolution pass.
	StageVariants Stage = "variants"

	// StageReferences is the reference annotation pass.
	StageReferences Stage = "references"
)

// Kind is the kind of a diagnostic.
type Kind int

const (
	// KindUnparsableClassifier is a "CL:" piece that is not a reference.
	KindUnparsableClassifier Kind = iota + 1

	// KindUnparsableVariant is a "variant of" annotation whose reference
	// could not be parsed.
	KindUnparsableVariant

	// KindMissingReference is a reference to an entry that does not exist.
	KindMissingReference

	// KindAmbiguousReference is a reference that matches more than one
	// entry.
	KindAmbiguousReference

	// KindSelfReference is a variant chain that returns to an entry
	// already on the chain.
	KindSelfReference

	// KindMissingCanonical is a variant chain that ends at an entry that
	// does not exist.
	KindMissingCanonical
)

// Kinds lists every diagnostic kind in display order.
var Kinds = []Kind{
	KindUnparsableClassifier,
	KindUnparsableVariant,
	KindMissingReference,
	KindAmbiguousReference,
	KindSelfReference,
	KindMissingCanonical,
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindUnparsableClassifier:
		return "unparsable classifier"
	case KindUnparsableVariant:
		return "unparsable variant"
	case KindMissingReference:
		return "missing reference"
	case KindAmbiguousReference:
		return "ambiguous reference"
	case KindSelfReference:
		return "self-reference"
	case KindMissingCanonical:
		return "missing canonical entry"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Diagnostic is a non-fatal resolution event.
type Diagnostic struct {
	Stage Stage
	Kind  Kind

	// Entry is the entry whose translation held the annotation.
	Entry entry.Key

	// Ref is the parsed reference, if any.
	Ref entry.Ref

	// Text is the annotation text.
	Text string
}

// String implements [fmt.Stringer].
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s: %q", d.Stage, d.Kind, d.Entry, d.Text)
}

// Report is the outcome of one or more resolution passes.
type Report struct {
	// Diagnostics in the order they were encountered.
	Diagnostics []Diagnostic

	// Classifiers is the number of classifier references attached.
	Classifiers int

	// Variants is the number of variants recorded on canonical entries.
	Variants int

	// Deleted is the number of variant entries deleted because no
	// translations remained.
	Deleted int

	// Rewritten is the number of references replaced by canonical tokens.
	Rewritten int
}

// Count returns the number of diagnostics of the given kind.
func (r *Report) Count(kind Kind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// ByStage returns the diagnostics emitted by the given stage.
func (r *Report) ByStage(stage Stage) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Stage == stage {
			out = append(out, d)
		}
	}
	return out
}

func (r *Report) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

func (r *Report) merge(o *Report) {
	r.Diagnostics = append(r.Diagnostics, o.Diagnostics...)
	r.Classifiers += o.Classifiers
	r.Variants += o.Variants
	r.Deleted += o.Deleted
	r.Rewritten += o.Rewritten
}
