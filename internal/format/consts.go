// Package format houses low-level encoders and decoders for the Apple NVRAM
// v1 image format. Higher-level packages assemble these pieces into
// partitions and sections; nothing here allocates more than the output it
// returns.
package format

const (
	// CHRPHeaderSize is the size of the Open Firmware partition header.
	//
	//	Offset  Size  Description
	//	------  ----  -------------------------------------------
	//	 0x00    1    Signature
	//	 0x01    1    Checksum over the other 15 header bytes
	//	 0x02    2    Length in 16-byte blocks, header included (LE)
	//	 0x04   12    Name, zero padded
	CHRPHeaderSize = 16

	CHRPSignatureOffset = 0x00
	CHRPChecksumOffset  = 0x01
	CHRPLengthOffset    = 0x02
	CHRPNameOffset      = 0x04
	CHRPNameSize        = 12

	// CHRPBlockSize is the unit of the CHRP length field.
	CHRPBlockSize = 16

	// CHRPMaxBlocks is the largest length the u16 field can express.
	CHRPMaxBlocks = 0xFFFF
)

const (
	// PartitionHeaderSize is the size of the "nvram" header that opens each
	// of the two redundant partitions.
	//
	//	Offset  Size  Description
	//	------  ----  -------------------------------------------
	//	 0x00   16    CHRP header, signature 0x5A, name "nvram"
	//	 0x10    4    Adler-32 of bytes [0x14, partition end) (LE)
	//	 0x14    4    Generation counter (LE)
	//	 0x18    8    Reserved, zero
	PartitionHeaderSize = 0x20

	PartitionAdlerOffset      = 0x10
	PartitionGenerationOffset = 0x14

	// PartitionChecksumStart is where the Adler-32 coverage begins.
	PartitionChecksumStart = PartitionGenerationOffset

	// MinPartitionSize fits the partition header plus two empty sections.
	MinPartitionSize = PartitionHeaderSize + 2*CHRPHeaderSize
)

const (
	// PartitionSignature marks the per-partition "nvram" header.
	PartitionSignature byte = 0x5A
	// SectionSignature marks the common and system variable sections.
	SectionSignature byte = 0x70
)

var (
	// PartitionName is the CHRP name of the partition header.
	PartitionName = []byte("nvram")
	// CommonName is the CHRP name of the common variable section.
	CommonName = []byte("common")
	// SystemName is the CHRP name of the system variable section.
	SystemName = []byte("system")
)

const (
	// EscapeByte introduces a run-length escape inside a stored value.
	EscapeByte byte = 0xFF
	// EscapeRunFF is set in the count byte when the run repeats 0xFF
	// rather than 0x00.
	EscapeRunFF byte = 0x80
	// EscapeMaxRun is the longest run a single escape can describe.
	EscapeMaxRun = 0x7F

	// KeyValueSeparator divides a stored variable's key from its value.
	KeyValueSeparator byte = '='
	// EntryTerminator ends every stored variable.
	EntryTerminator byte = 0x00
)
