package migration

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/blockchain"
)

const (
	// NFTTemplateIndex and ERC20TemplateIndex select the factory templates.
	NFTTemplateIndex   = 1
	ERC20TemplateIndex = 1
	// NFTTokenURI is the token URI given to every migrated NFT.
	NFTTokenURI = "https://oceanprotocol.com/TEST/"
	// TokenDecimals is used for both the base token and the datatoken of the exchange.
	TokenDecimals = 18
)

// ERC20Strings are the name and symbol of the datatoken created for a
// migrated asset.
var ERC20Strings = []string{"ERC20WithPool", "ERC20P"}

// Params describes one fixed-rate asset to migrate. Addresses are hex
// strings; Rate is an integer amount in base-token units, given as a
// decimal or 0x-hex string. A nil Cap or MarketFee is sent as zero.
type Params struct {
	DID                          string
	FactoryAddress               string
	NFTName                      string
	NFTSymbol                    string
	Owner                        string
	Cap                          *big.Int
	Rate                         string
	MarketFee                    *big.Int
	PublishingMarketFeeAddress   string
	PublishingMarketTokenAddress string
	FixedRateExchangeAddress     string
	BaseTokenAddress             string
}

// Args returns the three factory call tuples built from p.
func (p Params) Args() (blockchain.NftCreateData, blockchain.ErcCreateData, blockchain.FixedData, error) {
	var result *multierror.Error
	addr := func(field, value string) common.Address {
		if !common.IsHexAddress(value) {
			result = multierror.Append(result, fmt.Errorf("invalid %s address %q", field, value))
			return common.Address{}
		}
		return common.HexToAddress(value)
	}

	owner := addr("owner", p.Owner)
	feeAddr := addr("publishing market fee", p.PublishingMarketFeeAddress)
	feeToken := addr("publishing market token", p.PublishingMarketTokenAddress)
	fixedRate := addr("fixed rate exchange", p.FixedRateExchangeAddress)
	baseToken := addr("base token", p.BaseTokenAddress)

	rate, err := blockchain.ParseUint256(p.Rate)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("rate: %w", err))
	}
	if err := result.ErrorOrNil(); err != nil {
		return blockchain.NftCreateData{}, blockchain.ErcCreateData{}, blockchain.FixedData{}, err
	}

	nft := blockchain.NftCreateData{
		Name:          p.NFTName,
		Symbol:        p.NFTSymbol,
		TemplateIndex: big.NewInt(NFTTemplateIndex),
		TokenURI:      NFTTokenURI,
	}
	erc := blockchain.ErcCreateData{
		TemplateIndex: big.NewInt(ERC20TemplateIndex),
		Strings:       append([]string(nil), ERC20Strings...),
		Addresses:     []common.Address{owner, owner, feeAddr, feeToken},
		Uints:         []*big.Int{orZero(p.Cap), big.NewInt(0)},
		Bytess:        [][]byte{},
	}
	fixed := blockchain.FixedData{
		FixedPriceAddress: fixedRate,
		Addresses:         []common.Address{baseToken, owner, owner, feeAddr},
		Uints: []*big.Int{
			big.NewInt(TokenDecimals),
			big.NewInt(TokenDecimals),
			rate,
			orZero(p.MarketFee),
			big.NewInt(0),
		},
	}
	return nft, erc, fixed, nil
}

// Call returns the factory call sent from the owner. Estimate and Migrate
// both build their transaction from it.
func (p Params) Call() (ethereum.CallMsg, error) {
	if !common.IsHexAddress(p.FactoryAddress) {
		return ethereum.CallMsg{}, fmt.Errorf("invalid factory address %q", p.FactoryAddress)
	}
	nft, erc, fixed, err := p.Args()
	if err != nil {
		return ethereum.CallMsg{}, err
	}
	data, err := blockchain.PackCreateNftWithErc20WithFixedRate(nft, erc, fixed)
	if err != nil {
		return ethereum.CallMsg{}, err
	}
	factory := common.HexToAddress(p.FactoryAddress)
	return ethereum.CallMsg{
		From: common.HexToAddress(p.Owner),
		To:   &factory,
		Data: data,
	}, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
