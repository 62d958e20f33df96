package main

import _ "unsafe" // for go:linkname

// Read-only on-disk filesystem image (spec.md 3, 4.4, 6). The image lives
// in physical memory at fsImageBase, loaded by the boot shim before the Go
// runtime starts; this package only ever reads it.
var fsImageBase uint32

type superblock struct {
	numDentries   uint32
	numInodes     uint32
	numDataBlocks uint32
}

func readSuperblock() superblock {
	return superblock{
		numDentries:   memReadU32(fsImageBase + 0),
		numInodes:     memReadU32(fsImageBase + 4),
		numDataBlocks: memReadU32(fsImageBase + 8),
	}
}

// dentryAt reads the dentry at index i directly out of block 0, which
// packs dentries to 64 bytes starting at offset 64 (spec.md 6).
func dentryAt(i uint32) Dentry {
	base := fsImageBase + DentrySize + i*DentrySize
	var d Dentry
	for j := 0; j < MaxFilename; j++ {
		d.Name[j] = memReadByte(base + uint32(j))
	}
	d.Type = memReadU32(base + MaxFilename)
	d.InodeNum = memReadU32(base + MaxFilename + 4)
	return d
}

// readDentryByName resolves name to its dentry, bounding the comparison at
// MaxFilename since on-disk names that fill the field are not
// null-terminated (spec.md 3, 4.4).
func readDentryByName(name string) (Dentry, error) {
	if len(name) > MaxFilename {
		return Dentry{}, ErrNotFound
	}
	sb := readSuperblock()
	for i := uint32(0); i < sb.numDentries; i++ {
		d := dentryAt(i)
		if d.nameString() == name {
			return d, nil
		}
	}
	return Dentry{}, ErrNotFound
}

// readDentryByIndex rejects i >= num_dentries per spec.md 4.4 and the
// boundary test in spec.md 8.
func readDentryByIndex(i uint32) (Dentry, error) {
	sb := readSuperblock()
	if i >= sb.numDentries {
		return Dentry{}, ErrNotFound
	}
	return dentryAt(i), nil
}

func inodeBase(inode uint32) uint32 {
	return fsImageBase + (inode+1)*BlockSize
}

func inodeLength(inode uint32) uint32 {
	return memReadU32(inodeBase(inode))
}

func dataBlockIndex(inode uint32, slot uint32) uint32 {
	return memReadU32(inodeBase(inode) + 4 + slot*4)
}

func dataBlockBase(block uint32) uint32 {
	sb := readSuperblock()
	return fsImageBase + (sb.numInodes+1+block)*BlockSize
}

// readBytes copies up to len(buf) bytes from inode starting at offset,
// clamped at the file's length, walking data_blocks[] and respecting block
// boundaries. Returns 0 on a malformed block index or when offset has
// already reached the end of the file (spec.md 4.4, boundary case in 8).
func readBytes(inode uint32, offset uint32, buf []byte) int {
	length := inodeLength(inode)
	if offset >= length {
		return 0
	}

	want := uint32(len(buf))
	if remain := length - offset; want > remain {
		want = remain
	}

	var copied uint32
	for copied < want {
		pos := offset + copied
		blockSlot := pos / BlockSize
		blockOff := pos % BlockSize

		if blockSlot >= MaxDataBlk {
			return int(copied)
		}
		block := dataBlockIndex(inode, blockSlot)
		sb := readSuperblock()
		if block >= sb.numDataBlocks {
			return 0
		}

		chunk := BlockSize - blockOff
		if remaining := want - copied; chunk > remaining {
			chunk = remaining
		}

		base := dataBlockBase(block) + blockOff
		for k := uint32(0); k < chunk; k++ {
			buf[copied+k] = memReadByte(base + k)
		}
		copied += chunk
	}

	return int(copied)
}

//go:linkname memReadByte mem_read_byte
//go:nosplit
func memReadByte(addr uint32) byte

//go:linkname memReadU32 mem_read_u32
//go:nosplit
func memReadU32(addr uint32) uint32

// RegularFile is the FileOps implementation for dentry type 2 (spec.md 3).
type RegularFile struct{}

func (RegularFile) Open(path string) error { return nil }

func (RegularFile) Read(fd *FileDescriptor, buf []byte) (int, error) {
	n := readBytes(fd.Inode, fd.Pos, buf)
	fd.Pos += uint32(n)
	return n, nil
}

func (RegularFile) Write(fd *FileDescriptor, buf []byte) (int, error) {
	return -1, ErrIO // read-only filesystem (spec.md 1, Non-goals)
}

func (RegularFile) Close(fd *FileDescriptor) error { return nil }

// Directory is the FileOps implementation for dentry type 1. "kth call on
// the same FD returns the kth dentry's name" (spec.md 4.4); Pos tracks k.
type Directory struct{}

func (Directory) Open(path string) error { return nil }

func (Directory) Read(fd *FileDescriptor, buf []byte) (int, error) {
	d, err := readDentryByIndex(fd.Pos)
	if err != nil {
		return 0, nil // exhausted: returns 0, not an error
	}
	fd.Pos++
	n := copy(buf, d.Name[:d.nameLen()])
	return n, nil
}

func (Directory) Write(fd *FileDescriptor, buf []byte) (int, error) {
	return -1, ErrIO
}

func (Directory) Close(fd *FileDescriptor) error { return nil }
