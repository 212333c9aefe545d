package file

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Memily89/smart-sales-memily89/logger"
)

// CSVFileOutput writes CSV records to a single OS file, optionally gzipped.
type CSVFileOutput struct {
	csvWriter     *csv.Writer
	log           logger.Logger
	fileName      string
	headerRecord  []string
	file          *os.File
	gzWriter      *gzip.Writer
	fWriter       *bufio.Writer
	useGzip       bool
	totalRowCount int
	needHeaderRow bool
	needCleanup   bool
}

var gzExtRegex = regexp.MustCompile(`(?i)\.(gzip|gz)$`)

// NewCSVFileOutput creates a CSV file writer targeting fileName.
// Parent directories are created if missing. Setting useGzip compresses the
// output and makes the file name end '.gz' (normalising any supplied
// 'gz'/'gzip' variant).
func NewCSVFileOutput(log logger.Logger, fileName string, useGzip bool) (*CSVFileOutput, error) {
	f := &CSVFileOutput{}
	f.log = log
	f.useGzip = useGzip
	f.fileName = fileName
	if useGzip && !gzExtRegex.MatchString(fileName) {
		f.fileName = fileName + ".gz"
	}
	if dir := filepath.Dir(f.fileName); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	var err error
	f.file, err = os.Create(f.fileName)
	if err != nil {
		return nil, err
	}
	if useGzip {
		f.gzWriter = gzip.NewWriter(f.file)
		f.fWriter = bufio.NewWriter(f.gzWriter) // writes must go via this instead of the os file.
	}
	f.csvWriter = csv.NewWriter(f)
	f.needHeaderRow = true
	f.needCleanup = true
	log.Debug("CSVFileOutput file name=", f.fileName, "; useGzip=", f.useGzip)
	return f, nil
}

// Write satisfies io.Writer so the csv.Writer can target either the plain
// file or the gzip stream.
func (f *CSVFileOutput) Write(p []byte) (n int, err error) {
	if f.useGzip {
		return f.fWriter.Write(p)
	}
	return f.file.Write(p)
}

// SetHeader stores the supplied record for output ahead of the first row.
func (f *CSVFileOutput) SetHeader(record []string) {
	f.headerRecord = record
}

// MustWriteToCSV writes record to the CSV file, emitting the header first if
// one was set.
func (f *CSVFileOutput) MustWriteToCSV(record []string) {
	if f.needHeaderRow && f.headerRecord != nil {
		f.log.Trace("Writing file header: ", f.headerRecord)
		if err := f.csvWriter.Write(f.headerRecord); err != nil {
			f.log.Panic("Unable to write header to CSV file: ", err)
		}
		f.needHeaderRow = false
	}
	if err := f.csvWriter.Write(record); err != nil {
		f.log.Panic("Unable to write to CSV file: ", err)
	}
	f.totalRowCount++
}

// FileName returns the resolved output file name.
func (f *CSVFileOutput) FileName() string {
	return f.fileName
}

// TotalRows returns the number of data rows written, excluding the header.
func (f *CSVFileOutput) TotalRows() int {
	return f.totalRowCount
}

// Cleanup flushes the CSV writer and closes the OS file. Safe to defer and
// to call more than once.
func (f *CSVFileOutput) Cleanup() {
	if !f.needCleanup {
		return
	}
	f.needCleanup = false
	f.csvWriter.Flush()
	if f.useGzip { // flush and close the gzip stream ahead of the file...
		if err := f.fWriter.Flush(); err != nil {
			f.log.Panic(err)
		}
		if err := f.gzWriter.Close(); err != nil {
			f.log.Panic(err)
		}
	}
	if err := f.file.Close(); err != nil {
		f.log.Panic("unable to close OS file: ", f.fileName, "; ", err)
	}
	f.log.Debug("CSVFileOutput wrote ", f.totalRowCount, " rows to ", f.fileName)
}
