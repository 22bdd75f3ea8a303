// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"bytes"
	"fmt"

	"github.com/Fantom-foundation/svmbridge/go/svm"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// defaultUnitsPerInstruction is the compute limit granted to each
// instruction of a transaction not requesting a limit explicitly.
const defaultUnitsPerInstruction = 200_000

// execution is the state of a single transaction while it is processed.
// Account modifications are applied to private copies and only written back
// to the ledger by commit.
type execution struct {
	engine *Engine

	keys      []svm.Address
	header    solana.MessageHeader
	accounts  []*svm.Account
	signature svm.Signature

	logs       *logCollector
	limit      uint64
	consumed   uint64
	fee        uint64
	returnData svm.ReturnData
	inner      [][]svm.InnerInstruction
	stack      []svm.Address
}

// processed is the outcome of a transaction before it is committed.
type processed struct {
	result svm.TransactionResult
	exec   *execution
	// included is set for transactions that made it past validation and
	// are therefore recorded in the history, successful or not.
	included bool
}

func sanitizeFailure() svm.TransactionResult {
	return failure(svm.TransactionError{Kind: svm.TxSanitizeFailure}, svm.TransactionMetadata{})
}

func failure(err svm.TransactionError, meta svm.TransactionMetadata) svm.TransactionResult {
	return svm.TransactionResult{Failure: &svm.FailedTransactionMetadata{Err: err, Meta: meta}}
}

func (e *Engine) send(data []byte, version svm.MessageVersion) svm.TransactionResult {
	res := e.process(data, version)
	if res.result.IsSuccess() {
		res.exec.commit()
	}
	if res.included && e.history != nil {
		e.history.Add(res.exec.signature, res.result)
	}
	e.log.Debug("transaction processed",
		zap.Stringer("version", version),
		zap.Bool("success", res.result.IsSuccess()),
		zap.Bool("included", res.included),
	)
	return res.result
}

func (e *Engine) simulate(data []byte, version svm.MessageVersion) svm.SimulateResult {
	res := e.process(data, version)
	if !res.result.IsSuccess() {
		return svm.SimulateResult{Failure: res.result.Failure}
	}
	return svm.SimulateResult{Success: &svm.SimulatedTransactionInfo{
		Meta:         *res.result.Success,
		PostAccounts: res.exec.postAccounts(),
	}}
}

// process validates and executes a transaction without modifying the ledger.
func (e *Engine) process(data []byte, version svm.MessageVersion) processed {
	wire, err := svm.DecodeWireTransaction(data)
	if err != nil {
		e.log.Debug("rejecting undecodable transaction", zap.Error(err))
		return processed{result: sanitizeFailure()}
	}
	var meta svm.TransactionMetadata
	if len(wire.Signatures) > 0 {
		meta.Signature = wire.Signatures[0].Bytes()
	}
	reject := func(kind svm.TransactionErrorKind) processed {
		return processed{result: failure(svm.TransactionError{Kind: kind}, meta)}
	}

	actual, err := wire.Version()
	if err != nil {
		return reject(svm.TxSanitizeFailure)
	}
	if actual != version {
		if number, versioned := actual.Number(); versioned && number != 0 {
			return reject(svm.TxUnsupportedVersion)
		}
		return reject(svm.TxSanitizeFailure)
	}

	var msg solana.Message
	if err := msg.UnmarshalWithDecoder(bin.NewBinDecoder(wire.Message)); err != nil {
		e.log.Debug("rejecting undecodable message", zap.Error(err))
		return reject(svm.TxSanitizeFailure)
	}
	if kind, ok := sanitize(&msg, len(wire.Signatures)); !ok {
		return reject(kind)
	}

	exec := &execution{
		engine: e,
		header: msg.Header,
		keys:   make([]svm.Address, len(msg.AccountKeys)),
		logs:   newLogCollector(e.logLimit),
	}
	for i, key := range msg.AccountKeys {
		exec.keys[i] = svm.Address(key)
	}
	if len(wire.Signatures) > 0 {
		exec.signature = wire.Signatures[0]
	}

	if e.sigverify {
		for i := 0; i < int(msg.Header.NumRequiredSignatures); i++ {
			sig := solana.Signature(wire.Signatures[i])
			if !sig.Verify(msg.AccountKeys[i], wire.Message) {
				return reject(svm.TxSignatureFailure)
			}
		}
		if e.history != nil && e.history.Contains(exec.signature) {
			return reject(svm.TxAlreadyProcessed)
		}
	}
	if e.blockhashCheck && svm.Hash(msg.RecentBlockhash) != e.blockhash {
		return reject(svm.TxBlockhashNotFound)
	}

	limits, txErr := e.computeLimits(&msg)
	if txErr != nil {
		return processed{result: failure(*txErr, meta)}
	}
	exec.limit = limits.units
	exec.fee = uint64(msg.Header.NumRequiredSignatures)*LamportsPerSignature + limits.priorityFee()

	payer, found := e.accounts[exec.keys[0]]
	switch {
	case !found || payer.Lamports == 0:
		return reject(svm.TxAccountNotFound)
	case payer.Owner != svm.SystemProgramID:
		return reject(svm.TxInvalidAccountForFee)
	case payer.Lamports < exec.fee:
		return reject(svm.TxInsufficientFundsForFee)
	}
	meta.Fee = exec.fee

	for _, ix := range msg.Instructions {
		program, found := e.accounts[exec.keys[ix.ProgramIDIndex]]
		if !found {
			return processed{result: failure(svm.TransactionError{Kind: svm.TxProgramAccountNotFound}, meta), exec: exec, included: true}
		}
		if _, implemented := e.program(exec.keys[ix.ProgramIDIndex]); !program.Executable || !implemented {
			return processed{result: failure(svm.TransactionError{Kind: svm.TxInvalidProgramForExecution}, meta), exec: exec, included: true}
		}
	}

	exec.load()
	exec.accounts[0].Lamports -= exec.fee
	txErr = exec.run(msg.Instructions)
	if txErr == nil {
		txErr = exec.checkRent()
	}

	meta.Logs = exec.logs.messages
	meta.InnerInstructions = exec.inner
	meta.ComputeUnitsConsumed = exec.consumed
	meta.ReturnData = exec.returnData
	if txErr != nil {
		return processed{result: failure(*txErr, meta), exec: exec, included: true}
	}
	return processed{result: svm.TransactionResult{Success: &meta}, exec: exec, included: true}
}

// sanitize checks the structural integrity of a message.
func sanitize(msg *solana.Message, numSignatures int) (svm.TransactionErrorKind, bool) {
	header := msg.Header
	numKeys := len(msg.AccountKeys)
	switch {
	case header.NumRequiredSignatures == 0,
		int(header.NumRequiredSignatures) != numSignatures,
		header.NumReadonlySignedAccounts >= header.NumRequiredSignatures,
		int(header.NumRequiredSignatures)+int(header.NumReadonlyUnsignedAccounts) > numKeys,
		numKeys > 256:
		return svm.TxSanitizeFailure, false
	}
	if len(msg.AddressTableLookups) > 0 {
		return svm.TxAddressLookupTableNotFound, false
	}
	seen := make(map[solana.PublicKey]struct{}, numKeys)
	for _, key := range msg.AccountKeys {
		if _, found := seen[key]; found {
			return svm.TxAccountLoadedTwice, false
		}
		seen[key] = struct{}{}
	}
	for _, ix := range msg.Instructions {
		// the fee payer can not be a program
		if ix.ProgramIDIndex == 0 || int(ix.ProgramIDIndex) >= numKeys {
			return svm.TxSanitizeFailure, false
		}
		for _, index := range ix.Accounts {
			if int(index) >= numKeys {
				return svm.TxSanitizeFailure, false
			}
		}
	}
	return 0, true
}

func (x *execution) isSigner(index int) bool {
	return index < int(x.header.NumRequiredSignatures)
}

func (x *execution) isWritable(index int) bool {
	numSigned := int(x.header.NumRequiredSignatures)
	if index < numSigned {
		return index < numSigned-int(x.header.NumReadonlySignedAccounts)
	}
	return index-numSigned < len(x.keys)-numSigned-int(x.header.NumReadonlyUnsignedAccounts)
}

// load copies all accounts of the transaction. Missing accounts are
// represented by empty system accounts.
func (x *execution) load() {
	x.accounts = make([]*svm.Account, len(x.keys))
	for i, key := range x.keys {
		account := svm.Account{Owner: svm.SystemProgramID}
		if existing, found := x.engine.accounts[key]; found {
			account = existing.Clone()
		}
		x.accounts[i] = &account
	}
}

func (x *execution) run(instructions []solana.CompiledInstruction) *svm.TransactionError {
	for i, ix := range instructions {
		x.inner = append(x.inner, nil)
		accounts := make([]*InstructionAccount, len(ix.Accounts))
		for j, index := range ix.Accounts {
			accounts[j] = &InstructionAccount{
				Address:    x.keys[index],
				IsSigner:   x.isSigner(int(index)),
				IsWritable: x.isWritable(int(index)),
				Account:    x.accounts[index],
				index:      int(index),
			}
		}
		if err := x.execute(int(ix.ProgramIDIndex), accounts, ix.Data, 0); err != nil {
			return svm.NewInstructionError(uint8(i), *err)
		}
	}
	return nil
}

func (x *execution) consume(units uint64) *svm.InstructionError {
	if units > x.limit-x.consumed {
		x.consumed = x.limit
		return &svm.InstructionError{Kind: svm.IxComputationalBudgetExceeded}
	}
	x.consumed += units
	return nil
}

// builtinUnits is the fixed cost of invoking a builtin program.
const builtinUnits = 150

// execute runs a single instruction at the given invocation depth.
func (x *execution) execute(programIndex int, accounts []*InstructionAccount, data []byte, depth int) *svm.InstructionError {
	programID := x.keys[programIndex]
	program, found := x.engine.program(programID)
	if !found || !x.accounts[programIndex].Executable {
		return &svm.InstructionError{Kind: svm.IxUnsupportedProgramId}
	}
	for i, caller := range x.stack {
		if caller == programID && i != len(x.stack)-1 {
			return &svm.InstructionError{Kind: svm.IxReentrancyNotAllowed}
		}
	}
	if uint64(len(x.stack)) >= x.engine.computeBudget().MaxInstructionStackDepth {
		return &svm.InstructionError{Kind: svm.IxCallDepth}
	}
	x.stack = append(x.stack, programID)
	defer func() { x.stack = x.stack[:len(x.stack)-1] }()

	x.logs.log(fmt.Sprintf("Program %v invoke [%d]", programID, depth+1))
	_, builtin := x.engine.builtins[programID]
	available := x.limit - x.consumed
	start := x.consumed

	ctx := &InstructionContext{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
		exec:      x,
		depth:     depth,
	}
	ctx.pre = x.capture(accounts)

	var err *svm.InstructionError
	if builtin {
		err = x.consume(builtinUnits)
	}
	if err == nil {
		err = program.Execute(ctx)
	}
	if err == nil {
		err = x.verify(ctx)
	}
	if !builtin {
		x.logs.log(fmt.Sprintf("Program %v consumed %d of %d compute units", programID, x.consumed-start, available))
	}
	if err != nil {
		x.logs.log(fmt.Sprintf("Program %v failed: %v", programID, describe(err)))
		return err
	}
	x.logs.log(fmt.Sprintf("Program %v success", programID))
	return nil
}

func describe(err *svm.InstructionError) string {
	if err.Kind == svm.IxCustom {
		return fmt.Sprintf("custom program error: 0x%x", err.Code)
	}
	return err.String()
}

func (x *execution) capture(accounts []*InstructionAccount) map[int]svm.Account {
	res := make(map[int]svm.Account, len(accounts))
	for _, account := range accounts {
		res[account.index] = x.accounts[account.index].Clone()
	}
	return res
}

// verify checks the account modifications performed by a program since the
// last capture of its accounts.
func (x *execution) verify(ctx *InstructionContext) *svm.InstructionError {
	writable := map[int]bool{}
	for _, account := range ctx.Accounts {
		writable[account.index] = writable[account.index] || account.IsWritable
	}
	var before, after uint64
	for index, pre := range ctx.pre {
		post := x.accounts[index]
		before += pre.Lamports
		after += post.Lamports
		if kind, ok := checkModification(ctx.ProgramID, &pre, post, writable[index]); !ok {
			return &svm.InstructionError{Kind: kind}
		}
	}
	if before != after {
		return &svm.InstructionError{Kind: svm.IxUnbalancedInstruction}
	}
	return nil
}

func checkModification(programID svm.Address, pre, post *svm.Account, writable bool) (svm.InstructionErrorKind, bool) {
	lamportsChanged := pre.Lamports != post.Lamports
	dataChanged := !bytes.Equal(pre.Data, post.Data)
	ownerChanged := pre.Owner != post.Owner
	owned := pre.Owner == programID
	switch {
	case !writable && lamportsChanged:
		return svm.IxReadonlyLamportChange, false
	case !writable && dataChanged:
		return svm.IxReadonlyDataModified, false
	case ownerChanged && (!writable || !owned || pre.Executable):
		return svm.IxModifiedProgramId, false
	case pre.Executable != post.Executable && (!writable || !owned || pre.Executable):
		return svm.IxExecutableModified, false
	case pre.Executable && lamportsChanged:
		return svm.IxExecutableLamportChange, false
	case pre.Executable && dataChanged:
		return svm.IxExecutableDataModified, false
	case post.Lamports < pre.Lamports && !owned:
		return svm.IxExternalAccountLamportSpend, false
	case dataChanged && !owned:
		return svm.IxExternalAccountDataModified, false
	}
	return 0, true
}

// invoke processes an instruction issued by a running program.
func (x *execution) invoke(caller *InstructionContext, ix Instruction) *svm.InstructionError {
	programIndex, found := x.indexOf(ix.ProgramID)
	if !found {
		return &svm.InstructionError{Kind: svm.IxMissingAccount}
	}
	if err := x.consume(x.engine.computeBudget().InvokeUnits); err != nil {
		return err
	}
	accounts := make([]*InstructionAccount, len(ix.Accounts))
	compiled := make([]uint8, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		var granted *InstructionAccount
		for _, cur := range caller.Accounts {
			if cur.Address == meta.Address {
				if granted == nil {
					granted = &InstructionAccount{index: cur.index}
				}
				granted.IsSigner = granted.IsSigner || cur.IsSigner
				granted.IsWritable = granted.IsWritable || cur.IsWritable
			}
		}
		if granted == nil {
			return &svm.InstructionError{Kind: svm.IxMissingAccount}
		}
		if (meta.IsSigner && !granted.IsSigner) || (meta.IsWritable && !granted.IsWritable) {
			return &svm.InstructionError{Kind: svm.IxPrivilegeEscalation}
		}
		accounts[i] = &InstructionAccount{
			Address:    meta.Address,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
			Account:    x.accounts[granted.index],
			index:      granted.index,
		}
		compiled[i] = uint8(granted.index)
	}

	// modifications of the caller so far are attributed to the caller
	if err := x.verify(caller); err != nil {
		return err
	}
	top := len(x.inner) - 1
	x.inner[top] = append(x.inner[top], svm.InnerInstruction{
		Instruction: svm.CompiledInstruction{
			ProgramIDIndex: uint8(programIndex),
			Accounts:       compiled,
			Data:           append([]byte(nil), ix.Data...),
		},
		StackHeight: uint8(caller.depth + 2),
	})
	err := x.execute(programIndex, accounts, ix.Data, caller.depth+1)
	caller.pre = x.capture(caller.Accounts)
	return err
}

func (x *execution) indexOf(address svm.Address) (int, bool) {
	for i, key := range x.keys {
		if key == address {
			return i, true
		}
	}
	return 0, false
}

// checkRent rejects transactions leaving a writable account with a balance
// below the rent-exempt minimum, unless the account was below it before and
// neither grew nor received lamports.
func (x *execution) checkRent() *svm.TransactionError {
	rent := x.engine.rent()
	for i, post := range x.accounts {
		if !x.isWritable(i) || post.Lamports == 0 || rent.IsExempt(post.Lamports, uint64(len(post.Data))) {
			continue
		}
		pre, found := x.engine.accounts[x.keys[i]]
		if found && pre.Lamports > 0 &&
			!rent.IsExempt(pre.Lamports, uint64(len(pre.Data))) &&
			len(pre.Data) == len(post.Data) &&
			post.Lamports <= pre.Lamports {
			continue
		}
		return &svm.TransactionError{Kind: svm.TxInsufficientFundsForRent, Index: uint8(i)}
	}
	return nil
}

// commit writes the modified accounts back to the ledger. Accounts without
// lamports are removed.
func (x *execution) commit() {
	for i, account := range x.accounts {
		if !x.isWritable(i) {
			continue
		}
		if account.Lamports == 0 {
			delete(x.engine.accounts, x.keys[i])
			continue
		}
		x.engine.accounts[x.keys[i]] = *account
	}
}

func (x *execution) postAccounts() []svm.AccountEntry {
	var res []svm.AccountEntry
	for i, account := range x.accounts {
		if !x.isWritable(i) {
			continue
		}
		res = append(res, svm.AccountEntry{
			Address: x.keys[i].Bytes(),
			Account: svm.EncodeAccount(*account),
		})
	}
	return res
}
