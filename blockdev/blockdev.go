package blockdev

// BlockDevice is the contract the file system core consumes. Both Device
// (backed by a host file) and MemDevice (backed by memory) implement it.
type BlockDevice interface {
	Size() int
	ReadBlock(blocknum uint32, buf []byte) (int, error)
	WriteBlock(blocknum uint32, buf []byte) (int, error)
	Close(log bool) error
}

var (
	_ BlockDevice = (*Device)(nil)
	_ BlockDevice = (*MemDevice)(nil)
)
