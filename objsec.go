package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"objsec/pkg/logging"
	"objsec/pkg/objfile"
	"objsec/pkg/utils"
)

var version string

func main() {
	ctx, args, err := setup(os.Args[1:])
	if err != nil {
		utils.Fatal(err)
	}

	if len(args) == 0 {
		args = []string{"kinds"}
	}

	switch args[0] {
	case "kinds":
		printKinds(ctx)
	case "named":
		printNamed(args[1:])
	case "linkonce":
		printLinkonce()
	case "eh":
		printEncodings(ctx)
	case "string":
		utils.MustNo(printStringPool(ctx, args[1:]))
	case "sections":
		printSections(ctx)
	default:
		utils.Fatal(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func setup(argv []string) (*objfile.Context, []string, error) {
	fs := pflag.NewFlagSet("objsec", pflag.ContinueOnError)

	def := objfile.DefaultTargetConfig()
	arch := fs.String("arch", "arm", "Target architecture.")
	format := fs.String("format", def.Format.String(), "Binary format: elf or macho.")
	abi := fs.String("abi", def.ABI.String(), "ARM ABI variant: apcs or aapcs.")
	relocModel := fs.String("reloc-model", def.RelocModel.String(), "Relocation model: static or pic.")
	commentString := fs.String("comment-string", def.CommentString, "Assembler line-comment marker.")
	cstringPrefix := fs.String("cstring-prefix", def.CStringPrefix, "Name prefix of mergeable string pools.")
	logLevel := fs.String("log-level", "info", "Specifies log level. Options are 'debug', 'info' and 'error'")
	showVersion := fs.BoolP("version", "v", false, "Print the version and exit.")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: objsec [options] [kinds|named <name>...|linkonce|eh|string <elem-bytes>|sections]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return nil, nil, err
	}
	if *showVersion {
		fmt.Printf("objsec %s\n", version)
		os.Exit(0)
	}

	cfg := def
	var err error
	if cfg.Arch, err = objfile.GetMachineTypeFromName(*arch); err != nil {
		return nil, nil, err
	}
	if cfg.Format, err = objfile.ParseFormat(*format); err != nil {
		return nil, nil, err
	}
	if cfg.ABI, err = objfile.ParseABI(*abi); err != nil {
		return nil, nil, err
	}
	if cfg.RelocModel, err = objfile.ParseRelocModel(*relocModel); err != nil {
		return nil, nil, err
	}
	cfg.CommentString = *commentString
	cfg.CStringPrefix = *cstringPrefix

	ctx, err := objfile.NewContext(cfg, nil, logging.GetDefaultLogger(*logLevel))
	if err != nil {
		return nil, nil, err
	}
	return ctx, fs.Args(), nil
}

func printKinds(ctx *objfile.Context) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
	defer w.Flush()

	for _, kind := range objfile.Kinds {
		if kind.IsMergeableCString() {
			// needs an initializer to size; see the string command
			continue
		}
		sec := ctx.ELF.SectionForMergeableConstant(kind)
		fmt.Fprintf(w, "%s\t%s\t%s\n", kind, sec.Name, ctx.Directive(sec))
	}
}

func printNamed(names []string) {
	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, objfile.FlagsForNamedSection(name))
	}
}

func printLinkonce() {
	for _, kind := range objfile.Kinds {
		fmt.Printf("%s\t%s\n", kind, objfile.LinkoncePrefix(kind))
	}
}

func printEncodings(ctx *objfile.Context) {
	p := ctx.Profile
	fmt.Printf("personality\t%#02x\t%s\n", uint8(p.PersonalityEncoding()), p.PersonalityEncoding())
	fmt.Printf("lsda\t%#02x\t%s\n", uint8(p.LSDAEncoding()), p.LSDAEncoding())
	fmt.Printf("fde\t%#02x\t%s\n", uint8(p.FDEEncoding()), p.FDEEncoding())
	fmt.Printf("ttype\t%#02x\t%s\n", uint8(p.TTypeEncoding()), p.TTypeEncoding())
}

func printStringPool(ctx *objfile.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("string: element size in bytes required")
	}
	elemBytes, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("string: bad element size %q: %w", args[0], err)
	}

	g := &objfile.Global{
		Name:       "str",
		Linkage:    objfile.LinkagePrivate,
		IsConstant: true,
		Initializer: &objfile.Constant{
			Type: objfile.ArrayType{Elem: objfile.IntType{Bits: uint(elemBytes * 8)}, Len: 1},
			Data: make([]byte, elemBytes),
		},
	}
	sec := ctx.ELF.MergeableStringSection(g)
	fmt.Printf("%s\n", ctx.Directive(sec))
	return nil
}

func printSections(ctx *objfile.Context) {
	ctx.Finalize()

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
	defer w.Flush()

	for _, sec := range ctx.Registry.Sections() {
		hdr := sec.Header()
		fmt.Fprintf(w, "%s\t%s\t%#x\t%d\t%d\n", sec.Name, sec.Type, hdr.Flags, hdr.Size, hdr.Entsize)
	}
}
