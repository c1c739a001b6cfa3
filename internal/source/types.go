package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	// FileDecoded indicates the content was transcoded to UTF-8 from a coding cookie.
	FileDecoded
)

// DefaultEncoding is the encoding assumed when no BOM or coding cookie is present.
const DefaultEncoding = "utf-8"

// File captures metadata and content for a single source file.
type File struct {
	ID       FileID
	Path     string
	Content  []byte // always UTF-8, LF line endings
	LineIdx  []uint32
	Hash     [32]byte
	Flags    FileFlags
	Encoding string
}
