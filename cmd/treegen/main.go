// treegen builds the committed Merkle tree for a claim campaign.
//
// It reads a JSON manifest of (beneficiary, schedule parameters) pairs,
// prints the root to commit via the coordinator, and writes one
// XDR-encoded proof bundle per beneficiary for distribution.
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	xdr "github.com/nullstyle/go-xdr/xdr3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vestinglabs/claimgate/claims"
	"github.com/vestinglabs/claimgate/logging"
	"github.com/vestinglabs/claimgate/merkle"
)

//nolint:lll
type config struct {
	Manifest string `short:"m" long:"manifest" description:"Path to the claims manifest (JSON)" required:"true"`
	OutDir   string `short:"o" long:"out"      description:"Directory to write proof bundles into" default:"bundles"`
	DebugLog bool   `long:"debuglog" description:"Enable debug logs"`
	JSONLog  bool   `long:"jsonlog"  description:"Whether to log in JSON format"`
}

type manifest struct {
	Claims []manifestEntry `json:"claims"`
}

type manifestEntry struct {
	Beneficiary string `json:"beneficiary"`
	Start       uint64 `json:"start"`
	Cliff       uint64 `json:"cliff"`
	Duration    uint64 `json:"duration"`
	SlicePeriod uint64 `json:"slicePeriod"`
	Revocable   bool   `json:"revocable"`
	Amount      uint64 `json:"amount"`
}

func (e *manifestEntry) parse() (claims.Claim, error) {
	beneficiary, err := claims.NodeIDFromHex(e.Beneficiary)
	if err != nil {
		return claims.Claim{}, err
	}

	var merr *multierror.Error
	if e.Duration == 0 {
		merr = multierror.Append(merr, errors.New("duration must be positive"))
	}
	if e.SlicePeriod == 0 {
		merr = multierror.Append(merr, errors.New("slice period must be positive"))
	}
	if e.SlicePeriod > e.Duration {
		merr = multierror.Append(merr, errors.New("slice period exceeds duration"))
	}
	if e.Cliff > e.Duration {
		merr = multierror.Append(merr, errors.New("cliff exceeds duration"))
	}
	if e.Amount == 0 {
		merr = multierror.Append(merr, errors.New("amount must be positive"))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return claims.Claim{}, err
	}

	return claims.Claim{
		Beneficiary: beneficiary,
		ScheduleParams: claims.ScheduleParams{
			Start:       e.Start,
			Cliff:       e.Cliff,
			Duration:    e.Duration,
			SlicePeriod: e.SlicePeriod,
			Revocable:   e.Revocable,
			Amount:      e.Amount,
		},
	}, nil
}

// proofBundle is the self-contained blob distributed to one beneficiary.
type proofBundle struct {
	CampaignID  string
	Root        []byte
	Leaf        []byte
	Siblings    [][]byte
	Beneficiary []byte
	Start       uint64
	Cliff       uint64
	Duration    uint64
	SlicePeriod uint64
	Revocable   bool
	Amount      uint64
}

func parseManifest(path string) ([]claims.Claim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if len(m.Claims) == 0 {
		return nil, errors.New("manifest has no claims")
	}

	var merr *multierror.Error
	parsed := make([]claims.Claim, 0, len(m.Claims))
	for i := range m.Claims {
		claim, err := m.Claims[i].parse()
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("claim %d: %w", i, err))
			continue
		}
		parsed = append(parsed, claim)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return parsed, nil
}

func run(ctx context.Context, cfg *config) error {
	logger := logging.FromContext(ctx)

	claimList, err := parseManifest(cfg.Manifest)
	if err != nil {
		return fmt.Errorf("parsing manifest %s: %w", cfg.Manifest, err)
	}

	type member struct {
		claim claims.Claim
		leaf  []byte
	}
	members := make([]member, len(claimList))
	for i, claim := range claimList {
		members[i] = member{claim: claim, leaf: claim.Leaf()}
	}
	// leaves are committed in lexicographic order so the root does not
	// depend on manifest ordering
	sort.Slice(members, func(i, j int) bool {
		return bytes.Compare(members[i].leaf, members[j].leaf) < 0
	})

	tree := merkle.NewTree()
	for i, m := range members {
		if i > 0 && bytes.Equal(m.leaf, members[i-1].leaf) {
			return fmt.Errorf("duplicate claim for beneficiary %s", m.claim.Beneficiary)
		}
		if err := tree.AddLeaf(m.leaf); err != nil {
			return err
		}
	}
	root, err := tree.Root()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o700); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	campaign := uuid.New().String()
	var eg errgroup.Group
	for i := range members {
		i := i
		eg.Go(func() error {
			proof, err := tree.Proof(i)
			if err != nil {
				return err
			}
			bundle := proofBundle{
				CampaignID:  campaign,
				Root:        root,
				Leaf:        members[i].leaf,
				Siblings:    proof.Siblings,
				Beneficiary: members[i].claim.Beneficiary.Bytes(),
				Start:       members[i].claim.Start,
				Cliff:       members[i].claim.Cliff,
				Duration:    members[i].claim.Duration,
				SlicePeriod: members[i].claim.SlicePeriod,
				Revocable:   members[i].claim.Revocable,
				Amount:      members[i].claim.Amount,
			}
			var buf bytes.Buffer
			if _, err := xdr.Marshal(&buf, bundle); err != nil {
				return fmt.Errorf("serializing bundle: %w", err)
			}
			path := filepath.Join(cfg.OutDir, members[i].claim.Beneficiary.String()+".bin")
			if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
				return fmt.Errorf("writing bundle: %w", err)
			}
			logger.Debug("wrote proof bundle", zap.String("path", path))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	logger.Info(
		"campaign committed",
		zap.Int("claims", len(members)),
		zap.String("campaign", campaign),
		zap.String("root", hex.EncodeToString(root)),
	)
	fmt.Println(hex.EncodeToString(root))
	return nil
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		os.Exit(1)
	}

	level := zap.InfoLevel
	if cfg.DebugLog {
		level = zap.DebugLevel
	}
	logger := logging.New(level, "", cfg.JSONLog)
	defer func() { _ = logger.Sync() }()

	ctx := logging.NewContext(context.Background(), logger)
	if err := run(ctx, &cfg); err != nil {
		logger.Fatal("treegen failed", zap.Error(err))
	}
}
