// Command octra-cli is the wallet's command-line interface.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/uchiha0x/Octra-Wallet-Domain/config"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/domain"
	klog "github.com/uchiha0x/Octra-Wallet-Domain/internal/log"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/nonce"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/privacy"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/rpcclient"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/session"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/storage"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/submit"
	"github.com/uchiha0x/Octra-Wallet-Domain/internal/wallet"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/crypto"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/tx"
	"github.com/uchiha0x/Octra-Wallet-Domain/pkg/types"
)

// env bundles what every command needs.
type env struct {
	cfg    *config.Config
	client *rpcclient.Client
	ks     *wallet.Keystore
}

func main() {
	fs := flag.NewFlagSet("octra-cli", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Usage = usage
	fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg := loadConfig(flags)
	klog.Init(cfg.Log.Level, cfg.Log.JSON)
	if cfg.Network == config.Testnet {
		types.SetAddressPrefix(types.TestnetPrefix)
	}

	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatal("open keystore: %v", err)
	}
	e := &env{
		cfg:    cfg,
		client: rpcclient.NewWithTimeout(cfg.RPC.Endpoint, cfg.RPC.Timeout),
		ks:     ks,
	}

	switch args[0] {
	case "wallet":
		cmdWallet(e, args[1:])
	case "address":
		cmdAddress(e, args[1:])
	case "balance":
		cmdBalance(e, args[1:])
	case "send":
		cmdSend(e, args[1:])
	case "sendmany":
		cmdSendMany(e, args[1:])
	case "encrypt-balance":
		cmdCipherBalance(e, args[1:], true)
	case "decrypt-balance":
		cmdCipherBalance(e, args[1:], false)
	case "private-send":
		cmdPrivateSend(e, args[1:])
	case "claims":
		cmdClaims(e, args[1:])
	case "claim":
		cmdClaim(e, args[1:])
	case "domain":
		cmdDomain(e, args[1:])
	case "help":
		usage()
	default:
		fatal("unknown command %q (try 'octra-cli help')", args[0])
	}
}

func loadConfig(flags *config.Flags) *config.Config {
	dataDir := flags.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	// The network flag is resolved before defaults are chosen, so
	// "--network testnet" without a config file targets the testnet
	// endpoint, not mainnet's.
	cfg, err := config.Load(filepath.Join(dataDir, config.ConfigFileName), config.NetworkType(flags.Network))
	if err != nil {
		fatal("load config: %v", err)
	}
	flags.Apply(cfg)
	if err := config.Validate(cfg); err != nil {
		fatal("invalid config: %v", err)
	}
	return cfg
}

// ── wallet ──────────────────────────────────────────────────────────────

func cmdWallet(e *env, args []string) {
	if len(args) == 0 {
		fatal("Usage: octra-cli wallet <create|import|list|show|delete>")
	}
	switch args[0] {
	case "create":
		cmdWalletCreate(e, args[1:])
	case "import":
		cmdWalletImport(e, args[1:])
	case "list":
		cmdWalletList(e)
	case "show":
		cmdWalletShow(e, args[1:])
	case "delete":
		cmdWalletDelete(e, args[1:])
	default:
		fatal("unknown wallet command %q", args[0])
	}
}

func cmdWalletCreate(e *env, args []string) {
	fs := flag.NewFlagSet("wallet create", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)
	if *name == "" {
		fatal("Usage: octra-cli wallet create --name <name>")
	}

	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		fatal("generate mnemonic: %v", err)
	}
	key, err := wallet.KeyFromMnemonic(mnemonic, "", 0)
	if err != nil {
		fatal("derive key: %v", err)
	}
	defer key.Zero()

	password := readNewPassword()
	if err := e.ks.Create(*name, key, password, wallet.DefaultKDFParams()); err != nil {
		fatal("create wallet: %v", err)
	}
	registerSession(e, *name, key)

	fmt.Printf("Wallet:  %s\n", *name)
	fmt.Printf("Address: %s\n", key.Address())
	fmt.Println()
	fmt.Println("Recovery phrase (write it down, it is shown only once):")
	fmt.Println()
	fmt.Printf("  %s\n", mnemonic)
}

func cmdWalletImport(e *env, args []string) {
	fs := flag.NewFlagSet("wallet import", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	mnemonic := fs.String("mnemonic", "", "12 or 24 word recovery phrase")
	fs.Parse(args)
	if *name == "" || *mnemonic == "" {
		fatal("Usage: octra-cli wallet import --name <name> --mnemonic \"...\"")
	}

	key, err := wallet.KeyFromMnemonic(*mnemonic, "", 0)
	if err != nil {
		fatal("derive key: %v", err)
	}
	defer key.Zero()

	password := readNewPassword()
	if err := e.ks.Create(*name, key, password, wallet.DefaultKDFParams()); err != nil {
		fatal("create wallet: %v", err)
	}
	registerSession(e, *name, key)

	fmt.Printf("Imported: %s\n", *name)
	fmt.Printf("Address:  %s\n", key.Address())
}

func cmdWalletList(e *env) {
	names, err := e.ks.List()
	if err != nil {
		fatal("list wallets: %v", err)
	}
	if len(names) == 0 {
		fmt.Println("No wallets. Create one with 'octra-cli wallet create --name <name>'.")
		return
	}
	for _, name := range names {
		info, err := e.ks.Info(name)
		if err != nil {
			fmt.Printf("%-20s (unreadable: %v)\n", name, err)
			continue
		}
		fmt.Printf("%-20s %s  [%s]\n", name, info.Address, info.Fingerprint)
	}
}

func cmdWalletShow(e *env, args []string) {
	fs := flag.NewFlagSet("wallet show", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)
	if *name == "" {
		fatal("Usage: octra-cli wallet show --name <name>")
	}
	info, err := e.ks.Info(*name)
	if err != nil {
		fatal("read wallet: %v", err)
	}
	fmt.Printf("Name:        %s\n", info.Name)
	fmt.Printf("Address:     %s\n", info.Address)
	fmt.Printf("Public key:  %s\n", info.PublicKey)
	fmt.Printf("Fingerprint: %s\n", info.Fingerprint)
	fmt.Printf("Created:     %s\n", info.CreatedAt.Format("2006-01-02 15:04:05 UTC"))
}

func cmdWalletDelete(e *env, args []string) {
	fs := flag.NewFlagSet("wallet delete", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)
	if *name == "" {
		fatal("Usage: octra-cli wallet delete --name <name>")
	}
	if err := e.ks.Delete(*name); err != nil {
		fatal("delete wallet: %v", err)
	}
	withSession(e, func(m *session.Manager) {
		// Best effort; the wallet may never have been in the session.
		_ = m.Remove(*name)
	})
	fmt.Printf("Deleted %s\n", *name)
}

// registerSession records a wallet in the session store; session failures
// are reported but don't fail the keystore operation that already
// succeeded.
func registerSession(e *env, name string, key *crypto.KeyMaterial) {
	withSession(e, func(m *session.Manager) {
		err := m.Add(session.WalletRef{
			Name:        name,
			Address:     key.Address().String(),
			Fingerprint: key.Fingerprint(),
		})
		if err != nil {
			klog.Session.Warn().Err(err).Str("wallet", name).Msg("session registration failed")
			return
		}
		if active, _ := m.Active(); active == "" {
			_ = m.SwitchActive(name)
		}
	})
}

func withSession(e *env, fn func(*session.Manager)) {
	db, err := storage.NewBadger(e.cfg.SessionDir())
	if err != nil {
		klog.Session.Warn().Err(err).Msg("session store unavailable")
		return
	}
	m := session.Init(db)
	defer m.Teardown()
	fn(m)
}

// ── address / balance ───────────────────────────────────────────────────

func cmdAddress(e *env, args []string) {
	fs := flag.NewFlagSet("address", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)
	if *name == "" {
		fatal("Usage: octra-cli address --wallet <name>")
	}
	info, err := e.ks.Info(*name)
	if err != nil {
		fatal("read wallet: %v", err)
	}
	fmt.Println(info.Address)
}

func cmdBalance(e *env, args []string) {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	var address string
	switch {
	case fs.NArg() > 0:
		address = fs.Arg(0)
		if !types.ValidAddress(address) {
			fatal("invalid address: %s", address)
		}
	case *name != "":
		info, err := e.ks.Info(*name)
		if err != nil {
			fatal("read wallet: %v", err)
		}
		address = info.Address
	default:
		fatal("Usage: octra-cli balance --wallet <name> | octra-cli balance <address>")
	}

	bal, err := e.client.Balance(address)
	if err != nil {
		fatal("fetch balance: %v", err)
	}
	fmt.Printf("Address: %s\n", address)
	fmt.Printf("Balance: %s\n", bal.Balance)
	fmt.Printf("Nonce:   %d\n", bal.Nonce)
}

// ── send ────────────────────────────────────────────────────────────────

func cmdSend(e *env, args []string) {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	to := fs.String("to", "", "Recipient address or .oct domain")
	amountStr := fs.String("amount", "", "Amount to send (e.g. 1.5)")
	message := fs.String("message", "", "Optional message (max 1024 chars)")
	fs.Parse(args)
	if *name == "" || *to == "" || *amountStr == "" {
		fatal("Usage: octra-cli send --wallet <name> --to <addr|domain> --amount <amt> [--message <text>]")
	}

	amount, err := types.ParseAmount(*amountStr)
	if err != nil {
		fatal("invalid amount: %v", err)
	}
	if amount == 0 {
		fatal("amount must be positive")
	}

	recipient, err := domain.New(e.client).ResolveRecipient(*to)
	if err != nil {
		fatal("%v", err)
	}

	key := unlockWallet(e, *name)
	defer key.Zero()

	next, err := nonce.New(e.client).NextNonce(key.Address().String())
	if err != nil {
		fatal("compute nonce: %v", err)
	}
	t, err := tx.Build(key.Address(), recipient, amount, next, key, *message)
	if err != nil {
		fatal("build transaction: %v", err)
	}
	hash, err := e.client.SendTx(t)
	if err != nil {
		fatal("send: %v", err)
	}

	fmt.Printf("Submitted: %s\n", hash)
	fmt.Printf("Nonce:     %d\n", next)
	fmt.Printf("Est. fee:  %s\n", tx.EstimateFee(amount))
}

// recipientsFile is the JSON format of the sendmany input.
type recipientsFile []struct {
	To      string `json:"to"` // address or .oct domain
	Amount  string `json:"amount"`
	Message string `json:"message,omitempty"`
}

func cmdSendMany(e *env, args []string) {
	fs := flag.NewFlagSet("sendmany", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	file := fs.String("recipients", "", "Path to JSON recipients file")
	fs.Parse(args)
	if *name == "" || *file == "" {
		fatal("Usage: octra-cli sendmany --wallet <name> --recipients <file.json>")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fatal("read recipients: %v", err)
	}
	var entries recipientsFile
	if err := json.Unmarshal(data, &entries); err != nil {
		fatal("parse recipients: %v", err)
	}
	if len(entries) == 0 {
		fatal("no recipients in %s", *file)
	}

	registrar := domain.New(e.client)
	recipients := make([]submit.Recipient, len(entries))
	for i, entry := range entries {
		addr, err := registrar.ResolveRecipient(entry.To)
		if err != nil {
			fatal("recipient %d: %v", i, err)
		}
		amount, err := types.ParseAmount(entry.Amount)
		if err != nil {
			fatal("recipient %d: invalid amount: %v", i, err)
		}
		recipients[i] = submit.Recipient{Address: addr, Amount: amount, Message: entry.Message}
	}

	key := unlockWallet(e, *name)
	defer key.Zero()

	start, err := nonce.New(e.client).NextNonce(key.Address().String())
	if err != nil {
		fatal("compute nonce: %v", err)
	}
	results, err := submit.New(e.client).SubmitAll(recipients, start, key)
	if err != nil {
		fatal("%v", err)
	}

	ok := 0
	for i, r := range results {
		if r.Success() {
			ok++
			fmt.Printf("[%d] %s  %s -> %s\n", i, r.Hash, r.Amount, r.Recipient)
		} else {
			fmt.Printf("[%d] FAILED (nonce %d): %v\n", i, r.Nonce, r.Err)
		}
	}
	fmt.Printf("%d/%d accepted\n", ok, len(results))
}

// ── private balance ─────────────────────────────────────────────────────

func cmdCipherBalance(e *env, args []string, encrypt bool) {
	verb := "decrypt"
	if encrypt {
		verb = "encrypt"
	}
	fs := flag.NewFlagSet(verb+"-balance", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	amountStr := fs.String("amount", "", "Amount to "+verb)
	fs.Parse(args)
	if *name == "" || *amountStr == "" {
		fatal("Usage: octra-cli %s-balance --wallet <name> --amount <amt>", verb)
	}
	amount, err := types.ParseAmount(*amountStr)
	if err != nil {
		fatal("invalid amount: %v", err)
	}

	key := unlockWallet(e, *name)
	defer key.Zero()

	svc := privacy.NewService(e.client)
	var hash string
	if encrypt {
		hash, err = svc.Encrypt(key, amount)
	} else {
		hash, err = svc.Decrypt(key, amount)
	}
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Submitted: %s\n", hash)

	if view, err := svc.EncryptedBalance(key); err == nil {
		fmt.Printf("Public:    %s\n", view.Public)
		fmt.Printf("Encrypted: %s\n", view.Encrypted)
		fmt.Printf("Total:     %s\n", view.Total)
	}
}

func cmdPrivateSend(e *env, args []string) {
	fs := flag.NewFlagSet("private-send", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	to := fs.String("to", "", "Recipient address or .oct domain")
	amountStr := fs.String("amount", "", "Amount to transfer privately")
	fs.Parse(args)
	if *name == "" || *to == "" || *amountStr == "" {
		fatal("Usage: octra-cli private-send --wallet <name> --to <addr|domain> --amount <amt>")
	}
	amount, err := types.ParseAmount(*amountStr)
	if err != nil {
		fatal("invalid amount: %v", err)
	}

	recipient, err := domain.New(e.client).ResolveRecipient(*to)
	if err != nil {
		fatal("%v", err)
	}

	key := unlockWallet(e, *name)
	defer key.Zero()

	receipt, err := privacy.NewService(e.client).CreateTransfer(key, recipient, amount)
	if err != nil {
		if errors.Is(err, privacy.ErrRecipientKeyMissing) {
			fatal("recipient cannot receive private transfers yet: %v", err)
		}
		fatal("%v", err)
	}
	fmt.Printf("Submitted: %s\n", receipt.TxHash)
	fmt.Printf("Ephemeral: %s\n", receipt.EphemeralKey)
}

func cmdClaims(e *env, args []string) {
	fs := flag.NewFlagSet("claims", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)
	if *name == "" {
		fatal("Usage: octra-cli claims --wallet <name>")
	}

	key := unlockWallet(e, *name)
	defer key.Zero()

	claimable, err := privacy.NewService(e.client).ListClaimable(key)
	if err != nil {
		fatal("%v", err)
	}
	if len(claimable) == 0 {
		fmt.Println("No pending private transfers.")
		return
	}
	for _, c := range claimable {
		amount := "unknown"
		if c.AmountKnown {
			amount = c.Amount.String()
		}
		fmt.Printf("%-12s from %s  amount %s  epoch %d\n",
			c.Transfer.ID, c.Transfer.Sender, amount, c.Transfer.Epoch)
	}
}

func cmdClaim(e *env, args []string) {
	fs := flag.NewFlagSet("claim", flag.ExitOnError)
	name := fs.String("wallet", "", "Wallet name")
	id := fs.String("id", "", "Transfer ID to claim")
	fs.Parse(args)
	if *name == "" || *id == "" {
		fatal("Usage: octra-cli claim --wallet <name> --id <transfer-id>")
	}

	key := unlockWallet(e, *name)
	defer key.Zero()

	amount, err := privacy.NewService(e.client).Claim(key, *id)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Claimed %s into encrypted balance\n", amount)
}

// ── domain ──────────────────────────────────────────────────────────────

func cmdDomain(e *env, args []string) {
	if len(args) == 0 {
		fatal("Usage: octra-cli domain <register|resolve|list>")
	}
	registrar := domain.New(e.client)

	switch args[0] {
	case "register":
		fs := flag.NewFlagSet("domain register", flag.ExitOnError)
		name := fs.String("wallet", "", "Wallet name")
		dom := fs.String("name", "", "Domain to register (e.g. my-name.oct)")
		fs.Parse(args[1:])
		if *name == "" || *dom == "" {
			fatal("Usage: octra-cli domain register --wallet <name> --name <domain>")
		}
		key := unlockWallet(e, *name)
		defer key.Zero()
		hash, err := registrar.Register(key, *dom)
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Submitted: %s\n", hash)

	case "resolve":
		if len(args) < 2 {
			fatal("Usage: octra-cli domain resolve <domain>")
		}
		addr, err := registrar.Resolve(args[1])
		if err != nil {
			fatal("%v", err)
		}
		fmt.Println(addr)

	case "list":
		fs := flag.NewFlagSet("domain list", flag.ExitOnError)
		name := fs.String("wallet", "", "Wallet name")
		fs.Parse(args[1:])
		if *name == "" {
			fatal("Usage: octra-cli domain list --wallet <name>")
		}
		info, err := e.ks.Info(*name)
		if err != nil {
			fatal("read wallet: %v", err)
		}
		addr, err := types.ParseAddress(info.Address)
		if err != nil {
			fatal("parse address: %v", err)
		}
		names, err := registrar.List(addr)
		if err != nil {
			fatal("%v", err)
		}
		for _, n := range names {
			fmt.Println(n)
		}

	default:
		fatal("unknown domain command %q", args[0])
	}
}

// ── helpers ─────────────────────────────────────────────────────────────

func unlockWallet(e *env, name string) *crypto.KeyMaterial {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	key, err := e.ks.Load(name, password)
	if err != nil {
		fatal("unlock wallet: %v", err)
	}
	return key
}

func readNewPassword() []byte {
	password, err := readPassword("New password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}
	return password
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `octra-cli - Octra wallet

Usage: octra-cli [flags] <command> [args]

Wallet:
  wallet create --name <n>          Create a new wallet (prints recovery phrase)
  wallet import --name <n> --mnemonic "..."
                                    Import wallet from recovery phrase
  wallet list                       List wallets
  wallet show --name <n>            Show wallet metadata
  wallet delete --name <n>          Delete a wallet file
  address --wallet <w>              Print wallet address

Transactions:
  balance [--wallet <w>] [address]  Show balance and nonce
  send --wallet <w> --to <addr|domain> --amount <amt> [--message <text>]
  sendmany --wallet <w> --recipients <file.json>

Private balance:
  encrypt-balance --wallet <w> --amount <amt>
  decrypt-balance --wallet <w> --amount <amt>
  private-send --wallet <w> --to <addr|domain> --amount <amt>
  claims --wallet <w>               List claimable private transfers
  claim --wallet <w> --id <id>      Claim a private transfer

Domains:
  domain register --wallet <w> --name <domain>
  domain resolve <domain>
  domain list --wallet <w>

Flags:
  --network <mainnet|testnet>  --datadir <dir>  --rpc <url>
  --timeout <dur>  --log-level <lvl>  --log-json
`)
}
