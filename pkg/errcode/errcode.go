package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Config errors
	CredentialsFileError
	RegionsFileError

	// Source database errors
	SourceConnectionError
	SourceNotConnectedError
	SourceUnsupportedDriverError
	SourceQueryError
	SourceScanError

	// Frame errors
	FrameCoercionError
	FrameColumnError

	// Cache errors
	CacheReadError
	CacheDecodeError
	CacheWriteError
	CacheOpenError
	CacheDeleteError

	// Extraction errors
	ExtractOccurrencesError
	ExtractTableError
	ClosureFetchError

	// Output errors
	OutputCreateError
	OutputSchemaError
	OutputInsertError
	OutputRenameError
	OutputNamesError
	OutputVacuumError

	// Dump errors
	DumpCancelledError
)
