package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/swingingsimian/ensembl/internal/assembly"
	"github.com/swingingsimian/ensembl/internal/coord"
	"github.com/swingingsimian/ensembl/internal/project"
)

// DB is a DuckDB database holding the relational shape of a genome
// assembly: coordinate systems, seq regions with their lengths and
// attributes, and the assembly table of alignment blocks between
// coordinate system pairs.
//
// DB implements the coordinate-system registry, the attribute store,
// the mapper provider and the region resolver consumed by the
// projection core.
type DB struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*DB, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &DB{db: db, path: path, logger: zap.NewNop()}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *DB) DB() *sql.DB {
	return s.db
}

// SetLogger sets the logger for warning messages.
func (s *DB) SetLogger(l *zap.Logger) {
	s.logger = l
}

// ensureSchema creates tables if they don't exist.
func (s *DB) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS coord_system (
			coord_system_id BIGINT PRIMARY KEY,
			name VARCHAR NOT NULL,
			version VARCHAR NOT NULL DEFAULT '',
			rank INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS seq_region (
			seq_region_id BIGINT PRIMARY KEY,
			name VARCHAR NOT NULL,
			coord_system_id BIGINT NOT NULL,
			length BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS seq_region_attrib (
			seq_region_id BIGINT NOT NULL,
			code VARCHAR NOT NULL,
			value VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS assembly (
			asm_seq_region_id BIGINT NOT NULL,
			cmp_seq_region_id BIGINT NOT NULL,
			asm_start BIGINT NOT NULL,
			asm_end BIGINT NOT NULL,
			cmp_start BIGINT NOT NULL,
			cmp_end BIGINT NOT NULL,
			ori INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *DB) nextID(table, column string) (int64, error) {
	var id int64
	row := s.db.QueryRow(fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) + 1 FROM %s", column, table))
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// AddCoordSystem inserts a coordinate system and returns its id.
func (s *DB) AddCoordSystem(name, version string, rank int) (int64, error) {
	id, err := s.nextID("coord_system", "coord_system_id")
	if err != nil {
		return 0, fmt.Errorf("allocate coord_system id: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO coord_system (coord_system_id, name, version, rank) VALUES (?, ?, ?, ?)",
		id, name, version, rank)
	if err != nil {
		return 0, fmt.Errorf("insert coord_system %s: %w", name, err)
	}
	return id, nil
}

// AddSeqRegion inserts a seq region and returns its id.
func (s *DB) AddSeqRegion(name string, coordSystemID, length int64) (int64, error) {
	id, err := s.nextID("seq_region", "seq_region_id")
	if err != nil {
		return 0, fmt.Errorf("allocate seq_region id: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO seq_region (seq_region_id, name, coord_system_id, length) VALUES (?, ?, ?, ?)",
		id, name, coordSystemID, length)
	if err != nil {
		return 0, fmt.Errorf("insert seq_region %s: %w", name, err)
	}
	return id, nil
}

// AddSeqRegionAttrib attaches a (code, value) attribute to a seq region.
func (s *DB) AddSeqRegionAttrib(seqRegionID int64, code, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO seq_region_attrib (seq_region_id, code, value) VALUES (?, ?, ?)",
		seqRegionID, code, value)
	if err != nil {
		return fmt.Errorf("insert seq_region_attrib %s: %w", code, err)
	}
	return nil
}

// AddAssembly inserts one alignment block between an assembled and a
// component seq region.
func (s *DB) AddAssembly(asmID, cmpID, asmStart, asmEnd, cmpStart, cmpEnd int64, ori int) error {
	_, err := s.db.Exec(
		`INSERT INTO assembly (asm_seq_region_id, cmp_seq_region_id,
			asm_start, asm_end, cmp_start, cmp_end, ori)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		asmID, cmpID, asmStart, asmEnd, cmpStart, cmpEnd, ori)
	if err != nil {
		return fmt.Errorf("insert assembly block: %w", err)
	}
	return nil
}

// Resolve looks up a coordinate system by name and version. An empty
// version matches the lowest-rank (most assembled) system of that name.
// (nil, nil) means no such system exists.
func (s *DB) Resolve(name, version string) (*coord.System, error) {
	var row *sql.Row
	if version == "" {
		row = s.db.QueryRow(
			`SELECT coord_system_id, name, version, rank FROM coord_system
			 WHERE name = ? ORDER BY rank LIMIT 1`, name)
	} else {
		row = s.db.QueryRow(
			`SELECT coord_system_id, name, version, rank FROM coord_system
			 WHERE name = ? AND version = ?`, name, version)
	}

	sys := &coord.System{}
	err := row.Scan(&sys.ID, &sys.Name, &sys.Version, &sys.Rank)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve coord_system %s: %w", name, err)
	}
	return sys, nil
}

// SeqRegionInfo describes one seq region row with its coordinate system
// and circular annotation.
type SeqRegionInfo struct {
	ID       int64
	Name     string
	Length   int64
	System   *coord.System
	Circular bool
}

// LookupSeqRegion finds a seq region by name, preferring the
// lowest-rank coordinate system when the name appears in several.
// (nil, nil) means no such region exists.
func (s *DB) LookupSeqRegion(name string) (*SeqRegionInfo, error) {
	row := s.db.QueryRow(
		`SELECT sr.seq_region_id, sr.name, sr.length,
		        cs.coord_system_id, cs.name, cs.version, cs.rank
		 FROM seq_region sr
		 JOIN coord_system cs ON cs.coord_system_id = sr.coord_system_id
		 WHERE sr.name = ?
		 ORDER BY cs.rank LIMIT 1`, name)

	info := &SeqRegionInfo{System: &coord.System{}}
	err := row.Scan(&info.ID, &info.Name, &info.Length,
		&info.System.ID, &info.System.Name, &info.System.Version, &info.System.Rank)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup seq_region %s: %w", name, err)
	}

	attrs, err := s.Attributes(name, "circular")
	if err != nil {
		return nil, err
	}
	for _, a := range attrs {
		if a.Value != "" && a.Value != "0" {
			info.Circular = true
		}
	}
	return info, nil
}

// Attributes returns the attributes of the named seq region, optionally
// filtered to the given codes.
func (s *DB) Attributes(name string, codes ...string) ([]coord.Attribute, error) {
	query := `SELECT a.code, a.value
		FROM seq_region_attrib a
		JOIN seq_region sr ON sr.seq_region_id = a.seq_region_id
		WHERE sr.name = ?`
	args := []any{name}
	if len(codes) > 0 {
		query += " AND a.code IN ("
		for i, code := range codes {
			if i > 0 {
				query += ", "
			}
			query += "?"
			args = append(args, code)
		}
		query += ")"
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attributes of %s: %w", name, err)
	}
	defer rows.Close()

	var attrs []coord.Attribute
	for rows.Next() {
		var a coord.Attribute
		if err := rows.Scan(&a.Code, &a.Value); err != nil {
			return nil, fmt.Errorf("scan attribute: %w", err)
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

// Mapper builds the assembly mapper between two coordinate systems from
// the assembly table. The table stores blocks in assembled-to-component
// direction; the reverse direction is served by inverting the blocks.
// (nil, nil) means no mapping path exists between the pair.
func (s *DB) Mapper(src, dst *coord.System) (project.Mapper, error) {
	blocks, err := s.assemblyBlocks(src, dst)
	if err != nil {
		return nil, err
	}
	if len(blocks) > 0 {
		return assembly.NewMapper(src, dst, blocks), nil
	}

	blocks, err = s.assemblyBlocks(dst, src)
	if err != nil {
		return nil, err
	}
	if len(blocks) > 0 {
		return assembly.NewMapper(src, dst, assembly.Invert(blocks)), nil
	}
	s.logger.Debug("no assembly path between coordinate systems",
		zap.String("src", src.String()),
		zap.String("dst", dst.String()))
	return nil, nil
}

func (s *DB) assemblyBlocks(asm, cmp *coord.System) ([]assembly.Block, error) {
	rows, err := s.db.Query(
		`SELECT asr.name, a.asm_start, a.asm_end,
		        csr.name, a.cmp_start, a.cmp_end, a.ori
		 FROM assembly a
		 JOIN seq_region asr ON asr.seq_region_id = a.asm_seq_region_id
		 JOIN seq_region csr ON csr.seq_region_id = a.cmp_seq_region_id
		 WHERE asr.coord_system_id = ? AND csr.coord_system_id = ?
		 ORDER BY asr.name, a.asm_start`,
		asm.ID, cmp.ID)
	if err != nil {
		return nil, fmt.Errorf("query assembly %s -> %s: %w", asm, cmp, err)
	}
	defer rows.Close()

	var blocks []assembly.Block
	for rows.Next() {
		var b assembly.Block
		if err := rows.Scan(&b.AsmName, &b.AsmStart, &b.AsmEnd,
			&b.CmpName, &b.CmpStart, &b.CmpEnd, &b.Ori); err != nil {
			return nil, fmt.Errorf("scan assembly block: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// ResolveRegion turns a mapped range into a concrete region in the
// given coordinate system, with the reference length and this database
// attached as its attribute collaborator.
func (s *DB) ResolveRegion(sys *coord.System, name string, start, end int64, strand int) (*coord.Region, error) {
	row := s.db.QueryRow(
		"SELECT seq_region_id, length FROM seq_region WHERE name = ? AND coord_system_id = ?",
		name, sys.ID)

	var id, length int64
	err := row.Scan(&id, &length)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("unknown seq_region %q in %s", name, sys)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve seq_region %s: %w", name, err)
	}

	circular := false
	attrs, err := s.Attributes(name, "circular")
	if err != nil {
		return nil, err
	}
	for _, a := range attrs {
		if a.Value != "" && a.Value != "0" {
			circular = true
		}
	}

	return coord.New(coord.Config{
		Name:     name,
		Start:    start,
		End:      end,
		Strand:   strand,
		Length:   length,
		System:   sys,
		Circular: circular,
		Source:   &coord.Source{Attributes: s},
	})
}
