package entropy

import (
	"github.com/pkg/errors"

	"github.com/ixvil/jxlcore/internal/bitio"
)

// ansFinalState is the canonical termination value an ANS stream's final
// 32-bit state must equal (spec.md §4.3).
const ansFinalState = 0x130000

// ansStateMask extracts the bottom log_tab_size bits of the state used to
// index the alias table.
const ansStateMask = AnsTabSize - 1

// ErrANS reports an ANS-stream-level error (bad termination state, bad
// context index, etc).
var ErrANS = errors.New("entropy: ANS stream error")

// perContext bundles everything needed to decode one context's hybrid-uint
// stream: either an alias table (ANS) or a Huffman LUT (prefix code), plus
// the HybridUintConfig controlling how its tokens expand.
type perContext struct {
	alias  *AliasTable
	huff   *HuffmanLUT
	config HybridUintConfig
}

// ANSCode is the fully-parsed entropy configuration for one stream:
// per-cluster alias tables or prefix LUTs, the raw-context-to-cluster map,
// and optional LZ77 parameters. It corresponds to spec.md §4.3's ANSCode.
type ANSCode struct {
	contexts      []perContext
	ctxMap        []int
	useprefix     bool
	maxNumBits    uint
	lz77          LZ77Params
}

// NewANSCode assembles an ANSCode from its decoded components.
func NewANSCode(contexts []perContext, ctxMap []int, usePrefixCode bool, maxNumBits uint, lz77 LZ77Params) *ANSCode {
	return &ANSCode{contexts: contexts, ctxMap: ctxMap, useprefix: usePrefixCode, maxNumBits: maxNumBits, lz77: lz77}
}

// Reader decodes a sequence of hybrid-uint-coded symbols from a bit
// stream, either via alias-table ANS or prefix/Huffman codes, with an
// optional LZ77 expansion layer.
type Reader struct {
	r      *bitio.Reader
	code   *ANSCode
	state  uint32
	window lz77Window
	initialized bool
}

// NewReader constructs a symbol reader over r using the given ANSCode. The
// ANS state register is lazily initialized from the first 32 raw bits on
// first use, per spec.md §4.3.
func NewReader(r *bitio.Reader, code *ANSCode) *Reader {
	return &Reader{r: r, code: code}
}

func (rd *Reader) ensureInit() {
	if rd.initialized || rd.code.useprefix {
		return
	}
	rd.state = uint32(rd.r.Read(32))
	rd.initialized = true
}

// clusterFor resolves a raw context index to its entropy cluster.
func (rd *Reader) clusterFor(rawCtx int) (int, error) {
	if rawCtx < 0 || rawCtx >= len(rd.code.ctxMap) {
		return 0, errors.Wrapf(ErrANS, "raw context %d out of range", rawCtx)
	}
	return rd.code.ctxMap[rawCtx], nil
}

// ReadSymbol decodes one hybrid-uint value for the given raw context,
// transparently expanding any LZ77 back-reference token it encounters.
func (rd *Reader) ReadSymbol(rawCtx int) (uint32, error) {
	rd.ensureInit()
	cluster, err := rd.clusterFor(rawCtx)
	if err != nil {
		return 0, err
	}
	if cluster < 0 || cluster >= len(rd.code.contexts) {
		return 0, errors.Wrapf(ErrANS, "cluster %d out of range", cluster)
	}
	pc := rd.code.contexts[cluster]

	token, err := rd.readToken(&pc)
	if err != nil {
		return 0, err
	}

	if rd.code.lz77.Enabled && token >= rd.code.lz77.MinSymbol {
		return 0, errors.Wrap(ErrANS, "LZ77 token returned where a literal was expected; use ReadSymbolLZ77")
	}

	v := pc.config.Decode(token, func(nbits uint) uint32 { return uint32(rd.r.Read(nbits)) })
	return v, nil
}

// ReadSymbolLZ77 behaves like ReadSymbol but understands LZ77
// back-references: when the decoded token is a back-reference, it expands
// the copy from the sliding window and returns the expanded run; otherwise
// it returns a single-element run holding the literal value.
func (rd *Reader) ReadSymbolLZ77(rawCtx int) ([]int32, error) {
	rd.ensureInit()
	cluster, err := rd.clusterFor(rawCtx)
	if err != nil {
		return nil, err
	}
	pc := rd.code.contexts[cluster]

	token, err := rd.readToken(&pc)
	if err != nil {
		return nil, err
	}

	if rd.code.lz77.Enabled && token >= rd.code.lz77.MinSymbol {
		lengthToken := token - rd.code.lz77.MinSymbol
		lenCluster, err := rd.clusterFor(rd.code.lz77.LengthContext)
		if err != nil {
			return nil, err
		}
		lenCfg := rd.code.contexts[lenCluster].config
		length := lenCfg.Decode(lengthToken, func(nbits uint) uint32 { return uint32(rd.r.Read(nbits)) }) + rd.code.lz77.MinLength

		distRawCtx := rd.code.lz77.DistContext
		distCluster, err := rd.clusterFor(distRawCtx)
		if err != nil {
			return nil, err
		}
		distPC := rd.code.contexts[distCluster]
		distToken, err := rd.readToken(&distPC)
		if err != nil {
			return nil, err
		}
		distance := distPC.config.Decode(distToken, func(nbits uint) uint32 { return uint32(rd.r.Read(nbits)) }) + 1

		run := rd.window.copyBack(length, distance)
		return run, nil
	}

	v := pc.config.Decode(token, func(nbits uint) uint32 { return uint32(rd.r.Read(nbits)) })
	rd.window.append(int32(v))
	return []int32{int32(v)}, nil
}

// readToken decodes one raw ANS or prefix token for the given context,
// without expanding it through HybridUintConfig.
func (rd *Reader) readToken(pc *perContext) (uint32, error) {
	if rd.code.useprefix {
		if pc.huff == nil {
			return 0, errors.Wrap(ErrANS, "prefix code requested but no Huffman table present")
		}
		return pc.huff.Decode(rd.r)
	}
	if pc.alias == nil {
		return 0, errors.Wrap(ErrANS, "ANS code requested but no alias table present")
	}
	rd.r.Refill()
	xi := rd.state & ansStateMask
	symbol, offset, freq := pc.alias.Lookup(xi)

	rd.state = freq*(rd.state>>AnsLogTabSize) + offset
	if rd.state < (1 << 16) {
		rd.state = (rd.state << 16) | uint32(rd.r.Read(16))
	}
	return symbol, nil
}

// Close validates the final ANS state, per spec.md §4.3's canonical
// termination check. Prefix-code streams have no such check.
func (rd *Reader) Close() error {
	if rd.code.useprefix {
		return nil
	}
	if rd.state != ansFinalState {
		return errors.Wrapf(ErrANS, "ANS final state 0x%X, want 0x%X", rd.state, ansFinalState)
	}
	return nil
}
