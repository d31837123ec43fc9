package assembly

import (
	"context"
	"fmt"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
)

// Contig is one emitted maximal non-branching path.
type Contig struct {
	ID       string
	Sequence string
	Length   int
	Coverage uint64
}

// WalkContigs extracts every contig from s: an ambiguous vertex
// terminates any walk before being consumed and becomes its own
// single-vertex contig (the join is recorded via FlagMarkSense/
// FlagMarkAntisense so it is identifiable as shared rather than a
// genuine one-base assembly), and every maximal unambiguous run
// becomes a multi-vertex contig. Preconditions: adjacency is current.
// Returns ErrAssemblyEmpty if no contigs result; callers must treat
// that as fatal.
func WalkContigs(ctx context.Context, s *graphstore.Store) ([]Contig, error) {
	visited := make(map[uint64]bool)
	var contigs []Contig
	nextID := 0

	for canon, view := range s.All() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if visited[canon.Bits()] {
			continue
		}

		if view.Ambiguous() {
			visited[canon.Bits()] = true
			if err := markJoin(s, canon, view); err != nil {
				return nil, err
			}
			contigs = append(contigs, buildContig([]kmer.K{canon}, nextID, []uint32{view.Multiplicity()}))
			nextID++

			continue
		}

		path, err := CollectUnambiguousPath(s, canon, visited)
		if err != nil {
			return nil, err
		}
		if len(path) == 0 {
			continue
		}

		mults, err := multiplicitiesOf(s, path)
		if err != nil {
			return nil, err
		}
		contigs = append(contigs, buildContig(path, nextID, mults))
		nextID++
	}

	if len(contigs) == 0 {
		return nil, ErrAssemblyEmpty
	}

	return contigs, nil
}

func markJoin(s *graphstore.Store, canon kmer.K, view graphstore.VertexView) error {
	if view.OutDegree(kmer.Sense) > 1 {
		if err := s.Mark(canon, graphstore.FlagMarkSense); err != nil {
			return err
		}
	}
	if view.OutDegree(kmer.Antisense) > 1 {
		if err := s.Mark(canon, graphstore.FlagMarkAntisense); err != nil {
			return err
		}
	}

	return s.Mark(canon, graphstore.FlagSeen)
}

func buildContig(path []kmer.K, id int, mults []uint32) Contig {
	var coverage uint64
	for _, m := range mults {
		coverage += uint64(m)
	}

	seq := DecodeSequence(path)

	return Contig{
		ID:       fmt.Sprintf("contig_%d", id),
		Sequence: seq,
		Length:   len(seq),
		Coverage: coverage,
	}
}
