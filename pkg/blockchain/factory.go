package blockchain

import (
	"bytes"
	_ "embed"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// MethodCreateNftWithErc20WithFixedRate creates an NFT, its ERC20 datatoken
// and a fixed-rate exchange in a single factory call.
const MethodCreateNftWithErc20WithFixedRate = "createNftWithErc20WithFixedRate"

//go:embed abi/ERC721Factory.json
var erc721FactoryABIJSON []byte

var erc721FactoryABI = sync.OnceValues(func() (abi.ABI, error) {
	return abi.JSON(bytes.NewReader(erc721FactoryABIJSON))
})

// ERC721FactoryABI returns the parsed ABI of the ERC721 factory methods used
// by the SDK.
func ERC721FactoryABI() (abi.ABI, error) {
	return erc721FactoryABI()
}

// NftCreateData is the NFT tuple of createNftWithErc20WithFixedRate.
type NftCreateData struct {
	Name          string   `abi:"name"`
	Symbol        string   `abi:"symbol"`
	TemplateIndex *big.Int `abi:"templateIndex"`
	TokenURI      string   `abi:"tokenURI"`
}

// ErcCreateData is the ERC20 tuple of createNftWithErc20WithFixedRate.
// Strings are [name, symbol]; Addresses are [minter, fee manager, publishing
// market, publishing market fee token]; Uints are [cap, publishing market fee].
type ErcCreateData struct {
	TemplateIndex *big.Int         `abi:"templateIndex"`
	Strings       []string         `abi:"strings"`
	Addresses     []common.Address `abi:"addresses"`
	Uints         []*big.Int       `abi:"uints"`
	Bytess        [][]byte         `abi:"bytess"`
}

// FixedData is the fixed-rate exchange tuple of
// createNftWithErc20WithFixedRate. Addresses are [base token, owner, market
// fee collector, allowed swapper]; Uints are [base decimals, datatoken
// decimals, rate, market fee, with mint].
type FixedData struct {
	FixedPriceAddress common.Address   `abi:"fixedPriceAddress"`
	Addresses         []common.Address `abi:"addresses"`
	Uints             []*big.Int       `abi:"uints"`
}

// PackCreateNftWithErc20WithFixedRate ABI-encodes a
// createNftWithErc20WithFixedRate call, selector included.
func PackCreateNftWithErc20WithFixedRate(nft NftCreateData, erc ErcCreateData, fixed FixedData) ([]byte, error) {
	parsed, err := ERC721FactoryABI()
	if err != nil {
		return nil, fmt.Errorf("parse ERC721 factory ABI: %w", err)
	}
	data, err := parsed.Pack(MethodCreateNftWithErc20WithFixedRate, nft, erc, fixed)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", MethodCreateNftWithErc20WithFixedRate, err)
	}
	return data, nil
}
