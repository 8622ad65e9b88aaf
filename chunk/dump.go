package chunk

import (
	"fmt"
	"os"
)

// DumpBytecode writes c's raw instruction stream to filePath+".nic" (or to
// "bytecode.nic" when filePath is empty), encoded as hexadecimal text so it
// can be inspected in an editor. Kept from the
// teacher's compiler.DumpBytecode, now operating on chunk.Chunk directly.
func (c *Chunk) DumpBytecode(filePath string) error {
	if filePath == "" {
		filePath = "bytecode.nic"
	} else {
		filePath = filePath + ".nic"
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating bytecode dump file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%x", c.Code)
	return err
}

// DumpDisassembly writes c's disassembly listing to filePath+".dnic" (or to
// "bytecode.dnic" when filePath is empty).
func (c *Chunk) DumpDisassembly(filePath, name string) error {
	if filePath == "" {
		filePath = "bytecode.dnic"
	} else {
		filePath = filePath + ".dnic"
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating disassembly dump file: %w", err)
	}
	defer f.Close()

	_, err = f.WriteString(c.Disassemble(name))
	return err
}
