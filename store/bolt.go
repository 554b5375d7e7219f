package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/lanrat/pqsort/dataset"
)

var (
	datasetsBucket = []byte("datasets")
	runsBucket     = []byte("runs")
)

// Bolt stores datasets in a bbolt file: one bucket per dataset table,
// keyed by big-endian set size, holding the values packed as float64 bits.
type Bolt struct {
	db   *bbolt.DB
	path string
}

// OpenBolt opens or creates a bbolt file at path
func OpenBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{datasetsBucket, runsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Bolt{db: db, path: path}, nil
}

// Path returns the path to the database file.
func (b *Bolt) Path() string {
	return b.path
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.db.Close()
}

func sizeKey(setSize int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(setSize))
	return key
}

// Put appends values to the dataset for tbl and setSize
func (b *Bolt) Put(ctx context.Context, tbl dataset.Table, setSize int, values []float64) error {
	if err := checkSetSize(setSize); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.Bucket(datasetsBucket).CreateBucketIfNotExists([]byte(tbl.Name()))
		if err != nil {
			return fmt.Errorf("create bucket %s: %w", tbl.Name(), err)
		}
		key := sizeKey(setSize)
		old := bucket.Get(key)

		// old is only valid inside the transaction
		packed := make([]byte, len(old), len(old)+8*len(values))
		copy(packed, old)
		for _, v := range values {
			packed = binary.BigEndian.AppendUint64(packed, math.Float64bits(v))
		}
		return bucket.Put(key, packed)
	})
}

// Get returns the values of the dataset in insertion order
func (b *Bolt) Get(ctx context.Context, tbl dataset.Table, setSize int) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var values []float64
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(datasetsBucket).Bucket([]byte(tbl.Name()))
		if bucket == nil {
			return nil
		}
		packed := bucket.Get(sizeKey(setSize))
		if len(packed)%8 != 0 {
			return fmt.Errorf("corrupt dataset %s size %d: %d bytes", tbl.Name(), setSize, len(packed))
		}
		values = make([]float64, 0, len(packed)/8)
		for i := 0; i < len(packed); i += 8 {
			values = append(values, math.Float64frombits(binary.BigEndian.Uint64(packed[i:])))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s size %d", ErrNotFound, tbl.Name(), setSize)
	}
	return values, nil
}

// RecordRun saves the result of one benchmark run.
// Keys start with the fixed width creation time so the bucket iterates oldest first.
func (b *Bolt) RecordRun(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	key := []byte(formatTime(run.CreatedAt) + "/" + run.ID.String())
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).Put(key, data)
	})
}

// Runs returns every recorded run, oldest first
func (b *Bolt) Runs(ctx context.Context) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var runs []Run
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(k, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("decode run %s: %w", k, err)
			}
			runs = append(runs, run)
			return nil
		})
	})
	return runs, err
}
