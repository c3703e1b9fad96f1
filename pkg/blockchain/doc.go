// Package blockchain provides the low-level Ethereum helpers used by the
// exchange migration and by provider request signing.
//
// # Client
//
// Dial connects to an RPC/WS endpoint and records the chain ID reported by the
// node:
//
//	evm, err := blockchain.Dial(ctx, "https://polygon-rpc.com", 5*time.Second)
//	if err != nil {
//		return err
//	}
//	defer evm.Close()
//
// # Transactions
//
// GetTransactOpts builds an EIP-155 transactor for a key. WaitForTransaction
// polls for a receipt with exponential backoff (github.com/jpillora/backoff)
// and reports reverted transactions as ErrTxReverted.
//
// FairGasPrice scales the node's suggested gas price by a configured
// multiplier, rounding down to a whole wei.
//
// # ERC721 Factory
//
// The factory ABI fragment for createNftWithErc20WithFixedRate is embedded in
// the package. NftCreateData, ErcCreateData and FixedData mirror its three
// tuple arguments and PackCreateNftWithErc20WithFixedRate produces calldata:
//
//	data, err := blockchain.PackCreateNftWithErc20WithFixedRate(nft, erc, fixed)
//
// ParseUint256 converts decimal or hex strings (e.g. an exchange rate) into
// uint256 arguments.
//
// # Signatures
//
// Two personal-sign flavours are provided. SignText signs arbitrary text
// with the "\x19Ethereum Signed Message:\n<len>" prefix, which is what a
// wallet's personal_sign produces. GetSignature signs keccak256(message) with
// the 32-byte prefix. Both return 65-byte signatures with V in {27, 28}.
package blockchain
