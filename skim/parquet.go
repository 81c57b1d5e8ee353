// Package skim writes one summary row per selected event to a Parquet file,
// for analysis outside of the plotting tools.
package skim

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/compress"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"github.com/decibelcooper/vbfplot/vbf"
)

// DefaultBatchSize is the number of rows buffered before a row group is
// written.
const DefaultBatchSize = 4096

// Record is one row of the skim.
type Record struct {
	Source   string
	Entry    int64
	Geometry vbf.Geometry

	NJet         int32
	MET          float64
	Mjj          float64
	MaxMjj       float64
	MaxI, MaxJ   int32
	LeadPt       float64
	TrailPt      float64
	LeadEta      float64
	TrailEta     float64
	DeltaEta     float64
	MinJetMETPhi float64
}

// RecordOf builds the row of an event with at least two tight jets.
func RecordOf(source string, entry int64, sum *vbf.Summary) Record {
	maxMjj, _ := sum.Masses.Mass(sum.MaxPair)
	return Record{
		Source:       source,
		Entry:        entry,
		Geometry:     sum.Geometry,
		NJet:         int32(sum.NJet()),
		MET:          sum.MET.Pt,
		Mjj:          sum.Mjj,
		MaxMjj:       maxMjj,
		MaxI:         int32(sum.MaxPair.I),
		MaxJ:         int32(sum.MaxPair.J),
		LeadPt:       sum.Jets[0].Pt,
		TrailPt:      sum.Jets[1].Pt,
		LeadEta:      sum.Jets[0].Eta,
		TrailEta:     sum.Jets[1].Eta,
		DeltaEta:     sum.DeltaEta,
		MinJetMETPhi: sum.MinJetMETPhi,
	}
}

var schema = arrow.NewSchema([]arrow.Field{
	{Name: "source", Type: arrow.BinaryTypes.String},
	{Name: "entry", Type: arrow.PrimitiveTypes.Int64},
	{Name: "geometry", Type: arrow.BinaryTypes.String},
	{Name: "n_jet", Type: arrow.PrimitiveTypes.Int32},
	{Name: "met", Type: arrow.PrimitiveTypes.Float64},
	{Name: "mjj", Type: arrow.PrimitiveTypes.Float64},
	{Name: "max_mjj", Type: arrow.PrimitiveTypes.Float64},
	{Name: "max_i", Type: arrow.PrimitiveTypes.Int32},
	{Name: "max_j", Type: arrow.PrimitiveTypes.Int32},
	{Name: "lead_pt", Type: arrow.PrimitiveTypes.Float64},
	{Name: "trail_pt", Type: arrow.PrimitiveTypes.Float64},
	{Name: "lead_eta", Type: arrow.PrimitiveTypes.Float64},
	{Name: "trail_eta", Type: arrow.PrimitiveTypes.Float64},
	{Name: "delta_eta", Type: arrow.PrimitiveTypes.Float64},
	{Name: "min_phi_jet_met", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// Schema returns the Arrow schema of the skim.
func Schema() *arrow.Schema { return schema }

// Writer buffers records and writes them as Parquet row groups. It is not
// safe for concurrent use.
type Writer struct {
	fw        *pqarrow.FileWriter
	rb        *array.RecordBuilder
	batchSize int
	pending   int
	written   int64
}

// NewWriter starts a Snappy-compressed Parquet stream on w.
func NewWriter(w io.Writer) (*Writer, error) {
	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithDictionaryDefault(true),
	)
	fw, err := pqarrow.NewFileWriter(schema, w, props, pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
	if err != nil {
		return nil, fmt.Errorf("skim: creating parquet writer: %w", err)
	}
	return &Writer{
		fw:        fw,
		rb:        array.NewRecordBuilder(memory.NewGoAllocator(), schema),
		batchSize: DefaultBatchSize,
	}, nil
}

// Write appends a record, writing a row group when the batch is full.
func (w *Writer) Write(r Record) error {
	w.append(r)
	w.pending++
	if w.pending >= w.batchSize {
		return w.flush()
	}
	return nil
}

func (w *Writer) append(r Record) {
	w.rb.Field(0).(*array.StringBuilder).Append(r.Source)
	w.rb.Field(1).(*array.Int64Builder).Append(r.Entry)
	w.rb.Field(2).(*array.StringBuilder).Append(r.Geometry.String())
	w.rb.Field(3).(*array.Int32Builder).Append(r.NJet)
	w.rb.Field(4).(*array.Float64Builder).Append(r.MET)
	w.rb.Field(5).(*array.Float64Builder).Append(r.Mjj)
	w.rb.Field(6).(*array.Float64Builder).Append(r.MaxMjj)
	w.rb.Field(7).(*array.Int32Builder).Append(r.MaxI)
	w.rb.Field(8).(*array.Int32Builder).Append(r.MaxJ)
	w.rb.Field(9).(*array.Float64Builder).Append(r.LeadPt)
	w.rb.Field(10).(*array.Float64Builder).Append(r.TrailPt)
	w.rb.Field(11).(*array.Float64Builder).Append(r.LeadEta)
	w.rb.Field(12).(*array.Float64Builder).Append(r.TrailEta)
	w.rb.Field(13).(*array.Float64Builder).Append(r.DeltaEta)
	w.rb.Field(14).(*array.Float64Builder).Append(r.MinJetMETPhi)
}

func (w *Writer) flush() error {
	if w.pending == 0 {
		return nil
	}
	rec := w.rb.NewRecord()
	defer rec.Release()

	if err := w.fw.Write(rec); err != nil {
		return fmt.Errorf("skim: writing row group: %w", err)
	}
	w.written += int64(w.pending)
	w.pending = 0
	return nil
}

// Rows returns the number of rows written so far, buffered rows excluded.
func (w *Writer) Rows() int64 { return w.written }

// Close flushes the buffered records and writes the Parquet footer.
func (w *Writer) Close() error {
	defer w.rb.Release()
	if err := w.flush(); err != nil {
		return err
	}
	if err := w.fw.Close(); err != nil {
		return fmt.Errorf("skim: closing parquet writer: %w", err)
	}
	return nil
}
